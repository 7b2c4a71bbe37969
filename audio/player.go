package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// DefaultVolume is the playback volume of every effect.
const DefaultVolume = 0.3

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero
// volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Player mixes sounds from a Bank. Until Open succeeds sounds are mixed but
// never reach a device, which keeps the game playable without audio.
type Player struct {
	mu     sync.Mutex
	bank   *Bank
	mixer  *beep.Mixer
	volume float64
	open   bool
	logger *log.Logger
}

func NewPlayer(bank *Bank, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		bank:   bank,
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
		logger: logger,
	}
}

// Open starts the speaker and attaches the mixer to it.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.open {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.open = true
	return nil
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		p.mixer.Clear()
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.open = false
}

func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = math.Max(0, v)
	p.mu.Unlock()
}

// Play starts the named sound at the given playback rate. Missing sounds are
// ignored; the bank has already logged why.
func (p *Player) Play(name string, rate float64) {
	buf, err := p.bank.Buffer(name)
	if err != nil || buf == nil {
		return
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if rate > 0 && rate != 1 {
		s = beep.ResampleRatio(resampleQuality, rate, s)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	s = newVolume(s, p.volume)
	if p.open {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
		return
	}
	p.mixer.Add(s)
}

// Playing returns the number of sounds still in the mixer.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Render mixes d worth of audio without a device and returns the peak
// amplitude. Headless hosts call it to retire finished sounds. It does
// nothing while the speaker is open.
func (p *Player) Render(d time.Duration) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return 0
	}

	var (
		chunk [512][2]float64
		peak  float64
	)
	for remaining := SampleRate.N(d); remaining > 0; {
		n := min(remaining, len(chunk))
		got, _ := p.mixer.Stream(chunk[:n])
		for _, s := range chunk[:got] {
			peak = math.Max(peak, math.Max(math.Abs(s[0]), math.Abs(s[1])))
		}
		remaining -= n
	}
	return peak
}
