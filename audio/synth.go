package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const (
	shotDuration      = 90 * time.Millisecond
	explosionDuration = 450 * time.Millisecond
)

// decay fades a streamer out exponentially over n samples and then ends it.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	rate     float64
}

func newDecay(s beep.Streamer, sr beep.SampleRate, d time.Duration, sharpness float64) beep.Streamer {
	return &decay{streamer: s, total: sr.N(d), rate: sharpness}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if remaining := d.total - d.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		env := math.Exp(-d.rate * float64(d.position) / float64(d.total))
		samples[i][0] *= env
		samples[i][1] *= env
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// ShotSound is a short blip.
func ShotSound(sr beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(sr, 1320)
	if err != nil {
		return beep.Silence(sr.N(shotDuration))
	}
	return newDecay(tone, sr, shotDuration, 5)
}

// ExplosionSound is a burst of decaying noise over a low rumble.
func ExplosionSound(sr beep.SampleRate) beep.Streamer {
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rand.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})

	parts := []beep.Streamer{newVolume(newDecay(noise, sr, explosionDuration, 6), 0.7)}
	if rumble, err := generators.SineTone(sr, 70); err == nil {
		parts = append(parts, newVolume(newDecay(rumble, sr, explosionDuration, 3), 0.5))
	}
	return beep.Mix(parts...)
}
