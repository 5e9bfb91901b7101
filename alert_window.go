package main

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/alarmist/pkg/audio"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/platform"
	"github.com/borgmon/alarmist/pkg/scheduler"
	"github.com/borgmon/alarmist/pkg/ui/components"
)

// systemNotifier sends a native notification and rings until dismissed
type systemNotifier struct {
	a *Alarmist
}

func (n *systemNotifier) Notify(notice scheduler.Notice) (scheduler.Dismisser, error) {
	if err := n.a.gate.Check(); err != nil {
		return nil, err
	}

	fyne.Do(func() {
		n.a.app.SendNotification(fyne.NewNotification(notice.Title, notice.Body))
		n.a.updateSystemTrayMenu()
	})

	return &ringingNotice{player: audio.PlayAlarm(n.a.settings().AlarmSound)}, nil
}

// ringingNotice stops the sound when the notification times out.
// Native notifications cannot be retracted, the OS hides them on its own.
type ringingNotice struct {
	player *audio.Player
}

func (r *ringingNotice) Dismiss() {
	r.player.Stop()
}

// alertWindowAlerter is the fallback when notifications are not allowed
type alertWindowAlerter struct {
	a *Alarmist
}

func (f *alertWindowAlerter) Alert(notice scheduler.Notice) {
	fyne.Do(f.a.updateSystemTrayMenu)
	cfg := f.a.settings()
	NewAlertWindow(f.a.app, notice, cfg.HoldTimeSeconds, cfg.AlarmSound).Show()
}

// AlertWindow is an alarm that stays up until the dismiss button is held
type AlertWindow struct {
	window          fyne.Window
	notice          scheduler.Notice
	holdTimeSeconds int

	audioPlayer    *audio.Player
	stopMonitoring chan struct{}
	closeOnce      sync.Once
}

func NewAlertWindow(app fyne.App, notice scheduler.Notice, holdTimeSeconds int, soundPath string) *AlertWindow {
	aw := &AlertWindow{
		notice:          notice,
		holdTimeSeconds: holdTimeSeconds,
		stopMonitoring:  make(chan struct{}),
	}

	aw.audioPlayer = audio.PlayAlarm(soundPath)

	// Create window and build UI on the main Fyne thread
	fyne.Do(func() {
		aw.window = app.NewWindow(notice.Title)
		aw.window.Resize(fyne.NewSize(520, 320))
		aw.window.CenterOnScreen()
		aw.window.SetContent(aw.buildUI())

		aw.window.SetOnClosed(func() {
			aw.closeOnce.Do(func() {
				close(aw.stopMonitoring)
				aw.audioPlayer.Stop()
			})
		})

		aw.setupFocusMonitoring()
	})

	return aw
}

func (aw *AlertWindow) buildUI() fyne.CanvasObject {
	title := canvas.NewText(aw.notice.Title, nil)
	title.TextSize = 32
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	timeLabel := widget.NewLabel(aw.notice.Label)
	timeLabel.Alignment = fyne.TextAlignCenter

	late := time.Since(aw.notice.FireAt)
	lateLabel := widget.NewLabel("")
	lateLabel.Alignment = fyne.TextAlignCenter
	if late >= time.Minute {
		lateLabel.SetText(fmt.Sprintf("%d min late", int(late.Minutes())))
	}

	hold := time.Duration(aw.holdTimeSeconds) * time.Second
	closeButton := components.NewHoldButton(fmt.Sprintf("Dismiss (Hold %ds)", aw.holdTimeSeconds), hold, func() {
		logger.Log.Infow("alarm dismissed", "label", aw.notice.Label)
		fyne.Do(aw.window.Close)
	})

	return container.NewPadded(container.NewCenter(container.NewVBox(
		container.NewPadded(title),
		timeLabel,
		lateLabel,
		widget.NewSeparator(),
		container.NewCenter(closeButton),
	)))
}

func (aw *AlertWindow) Show() {
	fyne.Do(func() {
		if aw.window != nil {
			aw.window.Show()
			aw.window.RequestFocus()
		}
	})
}

// setupFocusMonitoring brings the app back to front while the alert is open
func (aw *AlertWindow) setupFocusMonitoring() {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-aw.stopMonitoring:
				return
			case <-ticker.C:
				if platform.IsAppActive() {
					continue
				}
				logger.Log.Debugw("alert window not active, bringing to front", "label", aw.notice.Label)
				platform.ActivateApp()
				fyne.Do(func() {
					aw.window.Show()
				})
			}
		}
	}()
}
