// Package alarms renders a user's alarms as removable rows and wires them to
// the user store and the scheduler.
package alarms

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/borgmon/alarmist/pkg/models"
	"github.com/borgmon/alarmist/pkg/store"
	"github.com/borgmon/alarmist/pkg/ui/components"
)

// Armer arms a one-shot alarm for the current session
type Armer interface {
	Arm(label string) (models.ArmedAlarm, error)
}

// Messenger shows a message to the user
type Messenger interface {
	ShowMessage(title, message string)
}

// List is the dashboard's alarm list
type List struct {
	users     *store.UserStore
	armer     Armer
	messenger Messenger
	view      *components.RemovableList
}

// NewList creates an empty List
func NewList(users *store.UserStore, armer Armer, messenger Messenger) *List {
	return &List{
		users:     users,
		armer:     armer,
		messenger: messenger,
		view:      components.NewRemovableList("No alarms yet."),
	}
}

// Object returns the canvas object to place in a layout
func (l *List) Object() fyne.CanvasObject {
	return l.view.Object()
}

// Labels returns the rendered labels in display order
func (l *List) Labels() []string {
	return l.view.Texts()
}

// RenderAll rebuilds the list from the stored alarms, oldest first.
// Nothing is armed here.
func (l *List) RenderAll(email string) error {
	labels, err := l.users.Alarms(email)
	if err != nil {
		return err
	}

	l.view.Clear()
	for _, label := range labels {
		l.view.Append(l.RenderOne(label, email))
	}
	return nil
}

// RenderOne builds a row whose remove control deletes label from the store
// and drops the row. It does not stop a timer already armed for label.
func (l *List) RenderOne(label, email string) *components.Row {
	return l.view.NewRow(label, func(row *components.Row) {
		if err := l.users.RemoveAlarm(email, label); err != nil {
			logger.Log.Errorw("failed to remove alarm", "email", email, "label", label, "error", err)
			l.messenger.ShowMessage("Error", fmt.Sprintf("Could not remove alarm: %v", err))
			return
		}
		l.view.Remove(row)
		logger.Log.Infow("alarm removed", "email", email, "label", label)
	})
}

// CreateAndRender stores label, shows its row and arms it.
// A duplicate is reported to the user and nothing else happens.
func (l *List) CreateAndRender(email, label string) error {
	if err := l.users.AddAlarm(email, label); err != nil {
		if errors.Is(err, store.ErrDuplicateAlarm) {
			l.messenger.ShowMessage("Duplicate Alarm", "Alarm already added for the selected date and time.")
		} else {
			l.messenger.ShowMessage("Error", fmt.Sprintf("Could not add alarm: %v", err))
		}
		return err
	}

	l.view.Append(l.RenderOne(label, email))

	if _, err := l.armer.Arm(label); err != nil {
		logger.Log.Errorw("failed to arm alarm", "label", label, "error", err)
		l.messenger.ShowMessage("Error", fmt.Sprintf("Alarm saved but could not be scheduled: %v", err))
		return err
	}
	return nil
}

// ArmFuture arms every stored alarm still in the future. Only used when the
// user opts into re-arming on start.
func (l *List) ArmFuture(email string, isFuture func(label string) bool) (int, error) {
	labels, err := l.users.Alarms(email)
	if err != nil {
		return 0, err
	}

	armed := 0
	for _, label := range labels {
		if !isFuture(label) {
			continue
		}
		if _, err := l.armer.Arm(label); err != nil {
			logger.Log.Warnw("skipping alarm on re-arm", "label", label, "error", err)
			continue
		}
		armed++
	}
	return armed, nil
}
