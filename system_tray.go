package main

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/alarmist/pkg/models"
)

const trayLimit = 5

func (a *Alarmist) setupSystemTray() {
	a.updateSystemTrayMenu()
}

// updateSystemTrayMenu lists the next armed alarms. Must run on the UI thread.
func (a *Alarmist) updateSystemTrayMenu() {
	desk, ok := a.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	upcoming := upcomingAlarms(a.scheduler.Pending(), time.Now(), trayLimit)
	if len(upcoming) > 0 {
		headerItem := fyne.NewMenuItem("Upcoming:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, alarm := range upcoming {
			item := fyne.NewMenuItem("  "+alarm.Label, nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Open", a.showMainWindow),
		fyne.NewMenuItem("Settings", a.showSettingsWindow),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", a.quit),
	)

	desk.SetSystemTrayMenu(fyne.NewMenu("Alarmist", menuItems...))
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

// upcomingAlarms returns up to limit armed alarms that have not fired yet, soonest first.
// pending is expected to be sorted by fire time.
func upcomingAlarms(pending []models.ArmedAlarm, now time.Time, limit int) []models.ArmedAlarm {
	upcoming := []models.ArmedAlarm{}
	for _, alarm := range pending {
		if alarm.Status != models.AlarmStatusArmed || alarm.FireAt.Before(now) {
			continue
		}
		upcoming = append(upcoming, alarm)
		if len(upcoming) >= limit {
			break
		}
	}
	return upcoming
}
