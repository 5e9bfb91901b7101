package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWAV_ReadsEncodedFile(t *testing.T) {
	f := Format{SampleRate: 22050, Channels: 1}
	pcm := Beep(f)

	got, data, err := ParseWAV(EncodeWAV(f, pcm))

	require.NoError(t, err)
	assert.Equal(t, f, got)
	assert.Equal(t, pcm, data)
}

func TestParseWAV_SkipsUnknownChunks(t *testing.T) {
	f := Format{SampleRate: 8000, Channels: 1}
	wav := EncodeWAV(f, []byte{1, 0, 2, 0})

	// splice a LIST chunk between the header and fmt
	list := append([]byte("LIST"), 4, 0, 0, 0, 'a', 'b', 'c', 'd')
	spliced := append(append(append([]byte{}, wav[:12]...), list...), wav[12:]...)

	got, data, err := ParseWAV(spliced)
	require.NoError(t, err)
	assert.Equal(t, f, got)
	assert.Equal(t, []byte{1, 0, 2, 0}, data)
}

func TestParseWAV_Rejects(t *testing.T) {
	valid := EncodeWAV(DefaultFormat, []byte{0, 0, 0, 0})

	eightBit := append([]byte{}, valid...)
	eightBit[34] = 8 // BitsPerSample

	truncated := valid[:len(valid)-2]

	for name, data := range map[string][]byte{
		"empty":     {},
		"not riff":  []byte("OggS0000WAVE"),
		"8-bit":     eightBit,
		"truncated": truncated,
		"no data":   valid[:36],
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseWAV(data)
			assert.ErrorIs(t, err, ErrUnsupportedWAV)
		})
	}
}

func TestBeep_Length(t *testing.T) {
	f := Format{SampleRate: 8000, Channels: 2}

	pcm := Beep(f)

	assert.Len(t, pcm, 8000*2*2)
	assert.NotEqual(t, make([]byte, len(pcm)), pcm)
}

func TestLoadSound(t *testing.T) {
	f, pcm, err := LoadSound("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFormat, f)
	assert.NotEmpty(t, pcm)

	path := filepath.Join(t.TempDir(), "ring.wav")
	want := Format{SampleRate: 16000, Channels: 1}
	require.NoError(t, os.WriteFile(path, EncodeWAV(want, []byte{9, 0}), 0o600))

	f, pcm, err = LoadSound(path)
	require.NoError(t, err)
	assert.Equal(t, want, f)
	assert.Equal(t, []byte{9, 0}, pcm)

	_, _, err = LoadSound(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
