package audio

import (
	"log"
	"path/filepath"

	"github.com/plus3/cubekiller/game"
)

// DefaultBank registers the game's sounds. If dir is non-empty, WAV files
// named after the sounds are used; otherwise the sounds are synthesized.
func DefaultBank(dir string, logger *log.Logger) *Bank {
	b := NewBank(logger)
	if dir != "" {
		b.Register(game.SoundShot, filepath.Join(dir, game.SoundShot+".wav"))
		b.Register(game.SoundExplosion, filepath.Join(dir, game.SoundExplosion+".wav"))
		return b
	}
	b.RegisterStreamer(game.SoundShot, ShotSound)
	b.RegisterStreamer(game.SoundExplosion, ExplosionSound)
	return b
}

var _ game.AudioSink = (*Player)(nil)
