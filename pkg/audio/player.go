package audio

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/borgmon/alarmist/pkg/logger"
	"github.com/ebitengine/oto/v3"
)

// The oto context can only be created once per process, so its format is fixed
// by the first sound played.
var (
	ctxOnce   sync.Once
	ctx       *oto.Context
	ctxFormat Format
	ctxErr    error
)

// Player loops an alarm sound until stopped
type Player struct {
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

func initContext(format Format) (*oto.Context, Format, error) {
	ctxOnce.Do(func() {
		c, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			ctxErr = fmt.Errorf("init audio context: %w", err)
			return
		}
		<-ready

		ctx = c
		ctxFormat = format
		logger.Log.Infow("audio context initialized", "sample_rate", format.SampleRate, "channels", format.Channels)
	})
	return ctx, ctxFormat, ctxErr
}

// LoadSound reads a 16-bit PCM WAV file, or synthesizes the built-in beep when path is empty
func LoadSound(path string) (Format, []byte, error) {
	if path == "" {
		return DefaultFormat, Beep(DefaultFormat), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Format{}, nil, fmt.Errorf("read alarm sound: %w", err)
	}
	return ParseWAV(data)
}

// PlayAlarm starts looping the configured sound. It returns nil if audio is unavailable;
// a nil *Player is safe to Stop.
func PlayAlarm(soundPath string) *Player {
	format, pcm, err := LoadSound(soundPath)
	if err != nil {
		logger.Log.Warnw("falling back to built-in beep", "path", soundPath, "error", err)
		format, pcm = DefaultFormat, Beep(DefaultFormat)
	}

	c, active, err := initContext(format)
	if err != nil {
		logger.Log.Errorw("audio unavailable", "error", err)
		return nil
	}
	if active != format {
		logger.Log.Warnw("sound format differs from audio context, using beep", "want", active, "got", format)
		pcm = Beep(active)
	}

	p := &Player{stopChan: make(chan struct{})}
	go p.loop(c, pcm)
	return p
}

func (p *Player) loop(c *oto.Context, pcm []byte) {
	for {
		player := c.NewPlayer(bytes.NewReader(pcm))
		player.Play()

		for player.IsPlaying() {
			select {
			case <-p.stopChan:
				player.Pause()
				if err := player.Close(); err != nil {
					logger.Log.Warnw("failed to close audio player", "error", err)
				}
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		if err := player.Close(); err != nil {
			logger.Log.Warnw("failed to close audio player", "error", err)
		}

		select {
		case <-p.stopChan:
			return
		default:
		}
	}
}

// Stop stops the playback; calling it more than once is fine
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)
		logger.Log.Debugw("audio playback stopped")
	}
}
