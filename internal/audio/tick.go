// Package audio decides when a dragged layer should click, each time its
// rotation crosses a multiple of a configured angle, and decodes the click.
package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Ticker tracks which detent every layer sits in and calls Play when a
// layer moves into a different one.
type Ticker struct {
	Step float64 // degrees between detents
	Play func()

	detent map[string]int
}

// NewTicker returns a Ticker with detents every step degrees.
func NewTicker(step float64, play func()) *Ticker {
	return &Ticker{Step: step, Play: play, detent: make(map[string]int)}
}

// Sync records a layer's rotation without clicking. Call it when a drag
// starts, since the rotation may have been reset or set directly since the
// last drag.
func (t *Ticker) Sync(name string, rotation float64) {
	if t.Step <= 0 {
		return
	}
	if t.detent == nil {
		t.detent = make(map[string]int)
	}
	t.detent[name] = int(math.Floor(rotation / t.Step))
}

// Rotated records a layer's new rotation. Its signature matches the wheel's
// drag hook.
func (t *Ticker) Rotated(name string, rotation float64) {
	if t.Step <= 0 {
		return
	}
	d := int(math.Floor(rotation / t.Step))
	if d == t.detent[name] {
		return
	}
	if t.detent == nil {
		t.detent = make(map[string]int)
	}
	t.detent[name] = d
	if t.Play != nil {
		t.Play()
	}
}

// Sound is a decoded clip kept in memory so it can be replayed.
type Sound struct {
	buf *beep.Buffer
}

// LoadSound decodes a wav, mp3 or flac file into memory.
func LoadSound(path string) (*Sound, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		return nil, beep.Format{}, err
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, beep.Format{}, err
	}
	return &Sound{buf: buf}, format, nil
}

// Len returns the clip length in samples.
func (s *Sound) Len() int { return s.buf.Len() }

// Streamer returns a fresh streamer over the whole clip.
func (s *Sound) Streamer() beep.StreamSeeker { return s.buf.Streamer(0, s.buf.Len()) }
