package game

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/layered-wheel/internal/audio"
)

// clickPlayer plays the detent sound through the speaker. The speaker is
// initialized once with the first clip's rate; later clips are resampled.
type clickPlayer struct {
	sound    *audio.Sound
	format   beep.Format
	rate     beep.SampleRate
	initDone bool
}

// load decodes path and makes it the current click.
func (p *clickPlayer) load(path string) error {
	sound, format, err := audio.LoadSound(path)
	if err != nil {
		return err
	}
	if !p.initDone {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/20)); err != nil {
			return err
		}
		p.rate = format.SampleRate
		p.initDone = true
	}
	p.sound = sound
	p.format = format
	return nil
}

func (p *clickPlayer) play() {
	if p.sound == nil {
		return
	}
	var s beep.Streamer = p.sound.Streamer()
	if p.format.SampleRate != p.rate {
		s = beep.Resample(4, p.format.SampleRate, p.rate, s)
	}
	speaker.Play(s)
}

func (p *clickPlayer) stop() {
	if !p.initDone {
		return
	}
	speaker.Clear()
	p.sound = nil
}
