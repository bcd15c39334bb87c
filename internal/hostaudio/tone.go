// Package hostaudio implements chip8.Audio as a continuous tone built
// with faiface/beep's generators package, toggled on and off rather
// than decoded from a sample file: the teacher's ManageAudio decoded
// assets/beep.mp3 and replayed it per sound-timer edge, but a CHIP-8
// beep is a single frequency for as long as ST is nonzero, which
// a generated, pausable streamer serves more directly than a clip.
package hostaudio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

// toneHz is the frequency of the CHIP-8 beep (§6).
const toneHz = 770.0

const sampleRate = beep.SampleRate(44100)

// Tone is a chip8.Audio implementation backed by one continuously
// running, pausable sine generator. On unpauses it; Off pauses it. The
// generator itself is never stopped and restarted, which avoids an
// audible click at the start of every tone.
type Tone struct {
	ctrl *beep.Ctrl
}

// NewTone initializes the speaker and builds a paused sine-wave
// streamer at toneHz, ready for On/Off toggling.
func NewTone() (*Tone, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	streamer, err := generators.SinTone(sampleRate, toneHz)
	if err != nil {
		return nil, err
	}
	ctrl := &beep.Ctrl{Streamer: streamer, Paused: true}
	speaker.Play(ctrl)
	return &Tone{ctrl: ctrl}, nil
}

// On implements chip8.Audio: unpauses the generator. A failure to
// acquire the speaker is not expected in practice, so this always
// succeeds once NewTone has.
func (t *Tone) On() error {
	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Off implements chip8.Audio: pauses the generator.
func (t *Tone) Off() error {
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
	return nil
}
