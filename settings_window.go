package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarmist/pkg/audio"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
)

var (
	holdTimeOptions     = []string{"1", "2", "3", "5", "10"}
	importWindowOptions = []string{"1", "3", "7", "14", "30", "90"}
)

type SettingsWindow struct {
	window fyne.Window
	a      *Alarmist

	autoStartCheck     *widget.Check
	holdTimeSelect     *widget.Select
	soundEntry         *widget.Entry
	rearmCheck         *widget.Check
	importWindowSelect *widget.Select
	saveStatusLabel    *widget.Label
	saveButton         *widget.Button
}

func (a *Alarmist) showSettingsWindow() {
	// If the window is already open, just bring it to front
	if a.settingsWindow != nil {
		a.settingsWindow.window.Show()
		a.settingsWindow.window.RequestFocus()
		return
	}

	sw := &SettingsWindow{a: a}
	sw.window = a.app.NewWindow("Alarmist - Settings")
	sw.window.SetContent(sw.buildUI())
	sw.window.Resize(fyne.NewSize(520, 420))
	sw.window.SetOnClosed(func() {
		a.settingsWindow = nil
	})

	a.settingsWindow = sw
	sw.window.Show()
}

func (sw *SettingsWindow) buildUI() fyne.CanvasObject {
	cfg := sw.a.settings()
	markChanged := func() {
		// setters below fire OnChanged before the button exists
		if sw.saveButton == nil {
			return
		}
		sw.saveButton.Enable()
		sw.saveStatusLabel.SetText("")
	}

	sw.autoStartCheck = widget.NewCheck("Launch Alarmist when you log in", func(bool) { markChanged() })
	sw.autoStartCheck.SetChecked(cfg.AutoStart)

	sw.holdTimeSelect = widget.NewSelect(holdTimeOptions, func(string) { markChanged() })
	sw.holdTimeSelect.SetSelected(strconv.Itoa(cfg.HoldTimeSeconds))

	sw.soundEntry = widget.NewEntry()
	sw.soundEntry.SetPlaceHolder("Built-in beep")
	sw.soundEntry.SetText(cfg.AlarmSound)
	sw.soundEntry.OnChanged = func(string) { markChanged() }

	browseButton := widget.NewButton("Browse...", func() {
		open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			sw.soundEntry.SetText(reader.URI().Path())
		}, sw.window)
		open.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
		open.Show()
	})

	testButton := widget.NewButton("Test", func() {
		if _, _, err := audio.LoadSound(sw.soundEntry.Text); err != nil {
			dialog.ShowError(err, sw.window)
			return
		}
		player := audio.PlayAlarm(sw.soundEntry.Text)
		time.AfterFunc(2*time.Second, player.Stop)
	})

	sw.rearmCheck = widget.NewCheck("Re-arm future alarms after login", func(bool) { markChanged() })
	sw.rearmCheck.SetChecked(cfg.RearmOnStart)

	sw.importWindowSelect = widget.NewSelect(importWindowOptions, func(string) { markChanged() })
	sw.importWindowSelect.SetSelected(strconv.Itoa(cfg.ImportWindowDays))

	rearmHelp := widget.NewLabel("Alarms are only armed when added. Enable this to arm stored alarms again after a restart.")
	rearmHelp.Wrapping = fyne.TextWrapWord
	rearmHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel("Auto Start:"), sw.autoStartCheck,
		widget.NewLabel("Dismiss hold (s):"), sw.holdTimeSelect,
		widget.NewLabel("Alarm sound:"), container.NewBorder(nil, nil, nil, container.NewHBox(browseButton, testButton), sw.soundEntry),
		container.NewVBox(widget.NewLabel("Re-arm:"), rearmHelp), sw.rearmCheck,
		widget.NewLabel("Import window (days):"), sw.importWindowSelect,
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()

	content := container.NewVBox(
		widget.NewLabel("Settings"),
		widget.NewSeparator(),
		form,
	)

	bottom := container.NewHBox(sw.saveStatusLabel, layout.NewSpacer(), sw.saveButton)
	return container.NewPadded(container.NewBorder(nil, bottom, nil, nil, container.NewVScroll(content)))
}

func (sw *SettingsWindow) getConfigFromUI() *models.Config {
	cfg := sw.a.settings()
	cfg.AutoStart = sw.autoStartCheck.Checked
	cfg.AlarmSound = sw.soundEntry.Text
	cfg.RearmOnStart = sw.rearmCheck.Checked
	if n, err := strconv.Atoi(sw.holdTimeSelect.Selected); err == nil {
		cfg.HoldTimeSeconds = n
	}
	if n, err := strconv.Atoi(sw.importWindowSelect.Selected); err == nil {
		cfg.ImportWindowDays = n
	}
	cfg.Normalize()
	return &cfg
}

func (sw *SettingsWindow) save() {
	newConfig := sw.getConfigFromUI()

	if err := setupAutostart(newConfig.AutoStart); err != nil {
		logger.Log.Errorw("failed to set autostart", "error", err)
		sw.saveStatusLabel.Importance = widget.DangerImportance
		sw.saveStatusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	sw.a.saveConfig(newConfig)
	logger.Log.Infow("settings saved",
		"auto_start", newConfig.AutoStart,
		"hold_time_seconds", newConfig.HoldTimeSeconds,
		"rearm_on_start", newConfig.RearmOnStart,
		"import_window_days", newConfig.ImportWindowDays,
	)

	sw.saveButton.Disable()
	sw.saveStatusLabel.Importance = widget.SuccessImportance
	sw.saveStatusLabel.SetText("Settings saved")
}
