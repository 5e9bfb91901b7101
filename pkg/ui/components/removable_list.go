package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// RemovableList shows text rows, each with its own remove button
type RemovableList struct {
	box   *fyne.Container
	empty *widget.Label
	rows  []*Row
}

// Row is one entry of a RemovableList
type Row struct {
	Label        *widget.Label
	RemoveButton *widget.Button
	object       fyne.CanvasObject
}

// NewRemovableList creates an empty list showing emptyText when it has no rows
func NewRemovableList(emptyText string) *RemovableList {
	empty := widget.NewLabel(emptyText)
	empty.Importance = widget.LowImportance

	return &RemovableList{
		box:   container.NewVBox(empty),
		empty: empty,
	}
}

// Object returns the canvas object to place in a layout
func (l *RemovableList) Object() fyne.CanvasObject {
	return container.NewVScroll(l.box)
}

// NewRow builds a detached row. onRemove runs when its button is tapped.
func (l *RemovableList) NewRow(text string, onRemove func(*Row)) *Row {
	row := &Row{Label: widget.NewLabel(text)}
	row.RemoveButton = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		if onRemove != nil {
			onRemove(row)
		}
	})
	row.RemoveButton.Importance = widget.LowImportance
	row.object = container.NewBorder(nil, nil, nil, row.RemoveButton, row.Label)
	return row
}

// Append adds row at the bottom
func (l *RemovableList) Append(row *Row) {
	if len(l.rows) == 0 {
		l.box.Remove(l.empty)
	}
	l.rows = append(l.rows, row)
	l.box.Add(row.object)
}

// Remove detaches row; siblings are not rebuilt
func (l *RemovableList) Remove(row *Row) {
	for i, r := range l.rows {
		if r == row {
			l.rows = append(l.rows[:i], l.rows[i+1:]...)
			l.box.Remove(row.object)
			break
		}
	}
	if len(l.rows) == 0 {
		l.box.Add(l.empty)
	}
}

// Clear removes every row
func (l *RemovableList) Clear() {
	l.rows = nil
	l.box.RemoveAll()
	l.box.Add(l.empty)
}

// Rows returns the rows in display order
func (l *RemovableList) Rows() []*Row {
	return l.rows
}

// Texts returns the row labels in display order
func (l *RemovableList) Texts() []string {
	texts := make([]string, len(l.rows))
	for i, r := range l.rows {
		texts[i] = r.Label.Text
	}
	return texts
}
