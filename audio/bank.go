// Package audio plays the game's sound effects through beep.
//
// Sounds live in a Bank keyed by name. Each sound is decoded the first time
// it is asked for and kept in memory afterwards; a sound that fails to load
// is logged once and stays silent for the rest of the process.
package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const (
	// SampleRate is the rate every buffered sound is converted to.
	SampleRate = beep.SampleRate(44100)

	resampleQuality = 4
)

// ErrUnknownSound is returned for names that were never registered.
var ErrUnknownSound = errors.New("unknown sound")

type entry struct {
	load func() (*beep.Buffer, error)
	once sync.Once
	buf  *beep.Buffer
	err  error
}

// Bank maps sound names to lazily loaded buffers. It is safe for concurrent use.
type Bank struct {
	mu      sync.Mutex
	entries map[string]*entry
	format  beep.Format
	logger  *log.Logger
}

func NewBank(logger *log.Logger) *Bank {
	if logger == nil {
		logger = log.Default()
	}
	return &Bank{
		entries: make(map[string]*entry),
		format:  beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2},
		logger:  logger,
	}
}

// Register adds a WAV file. The file is not touched until the sound is first used.
func (b *Bank) Register(name, path string) {
	b.add(name, func() (*beep.Buffer, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		streamer, format, err := wav.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		defer streamer.Close()

		var s beep.Streamer = streamer
		if format.SampleRate != b.format.SampleRate {
			s = beep.Resample(resampleQuality, format.SampleRate, b.format.SampleRate, s)
		}
		buf := beep.NewBuffer(b.format)
		buf.Append(s)
		return buf, nil
	})
}

// RegisterStreamer adds a generated sound. fn must return a finite streamer.
func (b *Bank) RegisterStreamer(name string, fn func(sr beep.SampleRate) beep.Streamer) {
	b.add(name, func() (*beep.Buffer, error) {
		buf := beep.NewBuffer(b.format)
		buf.Append(fn(b.format.SampleRate))
		if buf.Len() == 0 {
			return nil, fmt.Errorf("sound %q generated no samples", name)
		}
		return buf, nil
	})
}

func (b *Bank) add(name string, load func() (*beep.Buffer, error)) {
	b.mu.Lock()
	b.entries[name] = &entry{load: load}
	b.mu.Unlock()
}

// Buffer returns the decoded sound, loading it on first use.
func (b *Bank) Buffer(name string) (*beep.Buffer, error) {
	b.mu.Lock()
	e, ok := b.entries[name]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}

	e.once.Do(func() {
		e.buf, e.err = e.load()
		if e.err != nil {
			b.logger.Printf("audio: sound %q unavailable: %v", name, e.err)
		}
	})
	return e.buf, e.err
}

// Preload loads every registered sound and returns the names that failed.
func (b *Bank) Preload() []string {
	var failed []string
	for _, name := range b.Names() {
		if _, err := b.Buffer(name); err != nil {
			failed = append(failed, name)
		}
	}
	return failed
}

// Names lists registered sounds in sorted order.
func (b *Bank) Names() []string {
	b.mu.Lock()
	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		names = append(names, name)
	}
	b.mu.Unlock()
	sort.Strings(names)
	return names
}
