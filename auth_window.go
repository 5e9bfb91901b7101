package main

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarmist/pkg/account"
	"github.com/borgmon/alarmist/pkg/store"
)

// showLogin replaces the main window content with the login form.
// notice is shown above the form when set.
func (a *Alarmist) showLogin(notice string) {
	a.dashboard = nil

	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("you@example.com")
	passwordEntry := widget.NewPasswordEntry()

	form := &widget.Form{
		Items: []*widget.FormItem{
			widget.NewFormItem("Email", emailEntry),
			widget.NewFormItem("Password", passwordEntry),
		},
		SubmitText: "Log In",
		OnSubmit: func() {
			session, err := a.accounts.Login(emailEntry.Text, passwordEntry.Text)
			if err != nil {
				dialog.ShowError(loginError(err), a.mainWindow)
				return
			}
			a.showDashboard(session)
		},
	}

	registerButton := widget.NewButton("Create an account", func() {
		a.showRegister()
	})
	registerButton.Importance = widget.LowImportance

	header := widget.NewLabelWithStyle("Alarmist", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	content := container.NewVBox(header, widget.NewSeparator())
	if notice != "" {
		noticeLabel := widget.NewLabel(notice)
		noticeLabel.Importance = widget.SuccessImportance
		noticeLabel.Wrapping = fyne.TextWrapWord
		content.Add(noticeLabel)
	}
	content.Add(form)
	content.Add(container.NewCenter(registerButton))

	a.mainWindow.SetContent(container.NewPadded(content))
	a.mainWindow.Canvas().Focus(emailEntry)
}

func (a *Alarmist) showRegister() {
	emailEntry := widget.NewEntry()
	firstNameEntry := widget.NewEntry()
	lastNameEntry := widget.NewEntry()
	passwordEntry := widget.NewPasswordEntry()

	form := &widget.Form{
		Items: []*widget.FormItem{
			widget.NewFormItem("Email", emailEntry),
			widget.NewFormItem("First name", firstNameEntry),
			widget.NewFormItem("Last name", lastNameEntry),
			widget.NewFormItem("Password", passwordEntry),
		},
		SubmitText: "Register",
		OnSubmit: func() {
			session, err := a.accounts.Register(emailEntry.Text, firstNameEntry.Text, lastNameEntry.Text, passwordEntry.Text)
			if err != nil {
				if errors.Is(err, store.ErrDuplicateUser) {
					err = fmt.Errorf("an account with this email already exists")
				}
				dialog.ShowError(err, a.mainWindow)
				return
			}
			a.showDashboard(session)
		},
		CancelText: "Back",
		OnCancel: func() {
			a.showLogin("")
		},
	}

	header := widget.NewLabelWithStyle("Create an account", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.mainWindow.SetContent(container.NewPadded(container.NewVBox(header, widget.NewSeparator(), form)))
}

// loginError turns lookup failures into dialog text
func loginError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no account found for this email")
	case errors.Is(err, account.ErrIncorrectPassword):
		return fmt.Errorf("incorrect password")
	default:
		return err
	}
}
