package main

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarmist/pkg/account"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/notify"
	"github.com/borgmon/alarmist/pkg/store"
	"github.com/borgmon/alarmist/pkg/timefmt"
	"github.com/borgmon/alarmist/pkg/ui/alarms"
	"github.com/borgmon/alarmist/pkg/ui/components"
)

// Dashboard is the logged-in view: alarm form, alarm list and account actions
type Dashboard struct {
	a       *Alarmist
	session *account.Session
	window  fyne.Window

	list      *alarms.List
	dateEntry *components.BoundedEntry
	timeEntry *components.BoundedEntry
}

func (a *Alarmist) showDashboard(session *account.Session) {
	d := &Dashboard{
		a:       a,
		session: session,
		window:  a.mainWindow,
	}
	d.list = alarms.NewList(a.users, a, &dialogMessenger{window: a.mainWindow})

	a.dashboard = d
	a.mainWindow.SetContent(d.buildUI())
	d.load()
}

func (d *Dashboard) buildUI() fyne.CanvasObject {
	greeting := widget.NewLabelWithStyle(
		fmt.Sprintf("Hello, %s", d.session.DisplayName),
		fyne.TextAlignLeading,
		fyne.TextStyle{Bold: true},
	)

	d.dateEntry = components.NewDateEntry()
	d.timeEntry = components.NewTimeEntry()
	// the earliest time only matters for today
	d.timeEntry.SetGuard(func() bool {
		return d.dateEntry.Text == d.dateEntry.Min()
	})
	d.dateEntry.OnChanged = func(string) {
		if d.timeEntry.Text != "" {
			d.timeEntry.Validate()
		}
	}

	addButton := widget.NewButtonWithIcon("Add Alarm", theme.ContentAddIcon(), d.addAlarm)
	addButton.Importance = widget.HighImportance

	form := container.NewBorder(nil, nil, nil, addButton,
		container.NewGridWithColumns(2, d.dateEntry, d.timeEntry),
	)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DownloadIcon(), d.showImportMenu),
		widget.NewToolbarAction(theme.UploadIcon(), d.exportAlarms),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.AccountIcon(), d.showProfileDialog),
		widget.NewToolbarAction(theme.SettingsIcon(), d.a.showSettingsWindow),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.LogoutIcon(), d.logout),
	)

	header := container.NewVBox(
		container.NewBorder(nil, nil, greeting, nil, toolbar),
		widget.NewSeparator(),
		form,
		widget.NewSeparator(),
	)

	return container.NewPadded(container.NewBorder(header, nil, nil, nil,
		d.list.Object(),
	))
}

// load renders stored alarms without arming them, then asks for notification permission
func (d *Dashboard) load() {
	d.refreshBounds()

	if err := d.list.RenderAll(d.session.Email); err != nil {
		logger.Log.Errorw("failed to render alarms", "email", d.session.Email, "error", err)
		dialog.ShowError(err, d.window)
	}

	if d.a.settings().RearmOnStart {
		now := time.Now()
		armed, err := d.list.ArmFuture(d.session.Email, func(label string) bool {
			t, err := timefmt.ParseAlarm(label)
			return err == nil && t.After(now)
		})
		if err != nil {
			logger.Log.Errorw("failed to re-arm alarms", "error", err)
		} else {
			logger.Log.Infow("re-armed stored alarms", "count", armed)
		}
	}

	d.a.gate.Request(&dialogPrompter{window: d.window}, func(p notify.Permission) {
		logger.Log.Infow("notification permission", "state", string(p))
	})
}

func (d *Dashboard) refreshBounds() {
	timefmt.MinBound(time.Now(), d.dateEntry, d.timeEntry)
	if d.dateEntry.Text == "" {
		d.dateEntry.SetText(d.dateEntry.Min())
	}
}

func (d *Dashboard) addAlarm() {
	// the minimum may be stale if the window stayed open
	d.refreshBounds()

	if err := d.dateEntry.Validate(); err != nil {
		dialog.ShowError(fmt.Errorf("date: %w", err), d.window)
		return
	}
	if err := d.timeEntry.Validate(); err != nil {
		dialog.ShowError(fmt.Errorf("time: %w", err), d.window)
		return
	}

	at, err := timefmt.Combine(d.dateEntry.Text, d.timeEntry.Text)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}

	label := timefmt.FormatAlarm(at)
	if err := d.list.CreateAndRender(d.session.Email, label); err != nil {
		// already reported through the messenger
		logger.Log.Debugw("alarm not added", "label", label, "error", err)
		return
	}
	logger.Log.Infow("alarm added", "email", d.session.Email, "label", label)
}

func (d *Dashboard) showProfileDialog() {
	user, err := d.a.users.Read(d.session.Email)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}

	emailEntry := widget.NewEntry()
	emailEntry.SetText(d.session.Email)
	firstNameEntry := widget.NewEntry()
	firstNameEntry.SetText(user.FirstName)
	lastNameEntry := widget.NewEntry()
	lastNameEntry.SetText(user.LastName)
	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("New password")

	items := []*widget.FormItem{
		widget.NewFormItem("Email", emailEntry),
		widget.NewFormItem("First name", firstNameEntry),
		widget.NewFormItem("Last name", lastNameEntry),
		widget.NewFormItem("Password", passwordEntry),
	}

	dialog.ShowForm("Update Profile", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		err := d.a.accounts.UpdateProfile(d.session.Email, emailEntry.Text, firstNameEntry.Text, lastNameEntry.Text, passwordEntry.Text)
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				err = fmt.Errorf("email already registered, choose a new one")
			}
			dialog.ShowError(err, d.window)
			return
		}

		d.a.showLogin("Profile updated. Please log in again.")
	}, d.window)
}

func (d *Dashboard) logout() {
	logger.Log.Infow("logged out", "email", d.session.Email)
	d.a.showLogin("")
}

// dialogMessenger shows list messages as information dialogs
type dialogMessenger struct {
	window fyne.Window
}

func (m *dialogMessenger) ShowMessage(title, message string) {
	dialog.ShowInformation(title, message, m.window)
}

// dialogPrompter asks for notification permission with a confirm dialog
type dialogPrompter struct {
	window fyne.Window
}

func (p *dialogPrompter) AskPermission(answer func(granted bool)) {
	dialog.ShowConfirm(
		"Notifications",
		"Allow Alarmist to show system notifications when an alarm goes off?\nOtherwise alarms open an alert window.",
		answer,
		p.window,
	)
}
