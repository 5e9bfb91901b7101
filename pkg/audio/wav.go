package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var ErrUnsupportedWAV = errors.New("unsupported WAV file")

// Format describes interleaved signed 16-bit little-endian PCM
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat is used for the synthesized beep
var DefaultFormat = Format{SampleRate: 44100, Channels: 2}

type riffHeader struct {
	RIFF [4]byte
	Size uint32
	WAVE [4]byte
}

type fmtChunk struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ParseWAV returns the format and PCM payload of a 16-bit PCM WAV file
func ParseWAV(data []byte) (Format, []byte, error) {
	r := bytes.NewReader(data)

	var hdr riffHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
	}
	if string(hdr.RIFF[:]) != "RIFF" || string(hdr.WAVE[:]) != "WAVE" {
		return Format{}, nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrUnsupportedWAV)
	}

	var format *fmtChunk
	for {
		var id [4]byte
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			if err == io.EOF {
				return Format{}, nil, fmt.Errorf("%w: no data chunk", ErrUnsupportedWAV)
			}
			return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
		}

		switch string(id[:]) {
		case "fmt ":
			if size < 16 {
				return Format{}, nil, fmt.Errorf("%w: short fmt chunk", ErrUnsupportedWAV)
			}
			format = &fmtChunk{}
			if err := binary.Read(r, binary.LittleEndian, format); err != nil {
				return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
			}
			if _, err := r.Seek(int64(size)-16, io.SeekCurrent); err != nil {
				return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
			}
		case "data":
			if format == nil {
				return Format{}, nil, fmt.Errorf("%w: data before fmt chunk", ErrUnsupportedWAV)
			}
			if format.AudioFormat != 1 || format.BitsPerSample != 16 {
				return Format{}, nil, fmt.Errorf("%w: only 16-bit PCM is supported", ErrUnsupportedWAV)
			}
			if int(size) > r.Len() {
				return Format{}, nil, fmt.Errorf("%w: truncated data chunk", ErrUnsupportedWAV)
			}
			pcm := make([]byte, size)
			if _, err := io.ReadFull(r, pcm); err != nil {
				return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
			}
			return Format{SampleRate: int(format.SampleRate), Channels: int(format.Channels)}, pcm, nil
		default:
			if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
				return Format{}, nil, fmt.Errorf("%w: %v", ErrUnsupportedWAV, err)
			}
		}
	}
}

// EncodeWAV wraps PCM in a minimal WAV container
func EncodeWAV(f Format, pcm []byte) []byte {
	var buf bytes.Buffer
	blockAlign := uint16(f.Channels * 2)

	binary.Write(&buf, binary.LittleEndian, riffHeader{
		RIFF: [4]byte{'R', 'I', 'F', 'F'},
		Size: uint32(36 + len(pcm)),
		WAVE: [4]byte{'W', 'A', 'V', 'E'},
	})
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, fmtChunk{
		AudioFormat:   1,
		Channels:      uint16(f.Channels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.SampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: 16,
	})
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// Beep synthesizes three short 880 Hz beeps followed by silence, about one second in total
func Beep(f Format) []byte {
	const (
		freq      = 880.0
		amplitude = 0.4 * math.MaxInt16
	)
	beep := f.SampleRate / 8
	gap := f.SampleRate / 8
	total := f.SampleRate

	var buf bytes.Buffer
	buf.Grow(total * f.Channels * 2)
	for i := 0; i < total; i++ {
		var sample int16
		if i < 3*(beep+gap) && i%(beep+gap) < beep {
			sample = int16(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(f.SampleRate)))
		}
		for c := 0; c < f.Channels; c++ {
			binary.Write(&buf, binary.LittleEndian, sample)
		}
	}
	return buf.Bytes()
}
