package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTick = 50 * time.Millisecond

// HoldButton confirms only after being held down for the whole hold duration.
// Releasing or leaving the button early resets the progress.
type HoldButton struct {
	widget.BaseWidget
	Text        string
	OnConfirmed func()

	hold time.Duration

	mu       sync.Mutex
	holding  bool
	hovered  bool
	progress float64
	ticker   *time.Ticker
}

// NewHoldButton creates a HoldButton that fires onConfirmed after hold
func NewHoldButton(text string, hold time.Duration, onConfirmed func()) *HoldButton {
	if hold < holdTick {
		hold = holdTick
	}
	b := &HoldButton{
		Text:        text,
		OnConfirmed: onConfirmed,
		hold:        hold,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          canvas.NewRectangle(theme.Color(theme.ColorNameButton)),
		progressBar: canvas.NewRectangle(theme.Color(theme.ColorNamePrimary)),
	}
}

// Progress returns the current hold progress in [0, 1]
func (b *HoldButton) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// Tapped implements fyne.Tappable; a plain tap never confirms
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.mu.Lock()
	b.hovered = true
	b.mu.Unlock()
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.mu.Lock()
	b.hovered = false
	b.mu.Unlock()
	b.Release()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.Press()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.Release()
}

// Press starts filling the progress bar
func (b *HoldButton) Press() {
	b.mu.Lock()
	if b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = true
	b.progress = 0
	ticker := time.NewTicker(holdTick)
	b.ticker = ticker
	b.mu.Unlock()

	step := float64(holdTick) / float64(b.hold)
	go func() {
		for range ticker.C {
			b.mu.Lock()
			if !b.holding || b.ticker != ticker {
				b.mu.Unlock()
				return
			}
			b.progress += step
			done := b.progress >= 1.0
			if done {
				b.progress = 1.0
				b.holding = false
				ticker.Stop()
			}
			b.mu.Unlock()

			fyne.Do(b.Refresh)

			if done {
				if b.OnConfirmed != nil {
					b.OnConfirmed()
				}
				return
			}
		}
	}()
}

// Release cancels an unfinished hold
func (b *HoldButton) Release() {
	b.mu.Lock()
	if b.holding {
		b.holding = false
		b.progress = 0
		if b.ticker != nil {
			b.ticker.Stop()
		}
	}
	b.mu.Unlock()
	b.Refresh()
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)
	r.layoutProgress(size)
}

func (r *holdButtonRenderer) layoutProgress(size fyne.Size) {
	r.progressBar.Resize(fyne.NewSize(size.Width*float32(r.button.Progress()), size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	return fyne.NewSize(
		fyne.Max(textSize.Width+theme.Padding()*4, 200),
		fyne.Max(textSize.Height+theme.Padding()*2, 48),
	)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	r.button.mu.Lock()
	hovered := r.button.hovered
	r.button.mu.Unlock()
	if hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	r.layoutProgress(r.bg.Size())

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
