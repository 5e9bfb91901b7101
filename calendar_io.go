package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarmist/pkg/calendar"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/timefmt"
)

func (d *Dashboard) showImportMenu() {
	var picker dialog.Dialog

	fromFile := widget.NewButton("From file...", func() {
		picker.Hide()
		d.importFromFile()
	})
	fromURL := widget.NewButton("From URL...", func() {
		picker.Hide()
		d.importFromURL()
	})

	picker = dialog.NewCustom("Import Alarms", "Cancel", widget.NewForm(
		widget.NewFormItem("iCal", fromFile),
		widget.NewFormItem("Feed", fromURL),
	), d.window)
	picker.Show()
}

func (d *Dashboard) importFromFile() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		starts, err := calendar.Import(reader, time.Now(), d.importWindow())
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		d.addImported(starts)
	}, d.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".ics", ".ical"}))
	open.Show()
}

func (d *Dashboard) importFromURL() {
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://calendar.example.com/basic.ics")

	dialog.ShowForm("Import from URL", "Import", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("URL", urlEntry)},
		func(confirmed bool) {
			if !confirmed || urlEntry.Text == "" {
				return
			}

			url := urlEntry.Text
			window := d.importWindow()
			go func() {
				starts, err := calendar.Fetch(url, time.Now(), window)
				fyne.Do(func() {
					if err != nil {
						logger.Log.Errorw("calendar fetch failed", "url", url, "error", err)
						dialog.ShowError(err, d.window)
						return
					}
					d.addImported(starts)
				})
			}()
		}, d.window)
}

// addImported adds every start time the user does not have yet, arming each new one
func (d *Dashboard) addImported(starts []time.Time) {
	user, err := d.a.users.Read(d.session.Email)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}

	added, skipped := 0, 0
	for _, start := range starts {
		label := timefmt.FormatAlarm(start)
		if user.HasAlarm(label) {
			skipped++
			continue
		}
		if err := d.list.CreateAndRender(d.session.Email, label); err != nil {
			skipped++
			continue
		}
		added++
	}

	logger.Log.Infow("calendar import finished", "added", added, "skipped", skipped)
	dialog.ShowInformation("Import Alarms",
		fmt.Sprintf("Added %d alarm(s), skipped %d.", added, skipped), d.window)
}

func (d *Dashboard) exportAlarms() {
	labels, err := d.a.users.Alarms(d.session.Email)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	if len(labels) == 0 {
		dialog.ShowInformation("Export Alarms", "There are no alarms to export.", d.window)
		return
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := calendar.Export(writer, labels); err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		logger.Log.Infow("alarms exported", "count", len(labels), "uri", writer.URI().String())
	}, d.window)
	save.SetFileName("alarms.ics")
	save.Show()
}

func (d *Dashboard) importWindow() time.Duration {
	return time.Duration(d.a.settings().ImportWindowDays) * 24 * time.Hour
}
