package quantize

import (
	"fmt"
	"strings"

	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/model"
)

// Rounding holds the moduli used to collapse near-identical notes into a
// shared bucket. Key and Instrument are never rounded.
type Rounding struct {
	Velocity int64
	Duration int64
	Tempo    int64
}

func Default() Rounding {
	return Rounding{
		Velocity: constants.DefaultVelocityRounding,
		Duration: constants.DefaultDurationRounding,
		Tempo:    constants.DefaultTempoRounding,
	}
}

func (r Rounding) Validate() error {
	if r.Velocity <= 0 {
		return fmt.Errorf("velocity rounding must be positive, got %v", r.Velocity)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("duration rounding must be positive, got %v", r.Duration)
	}
	if r.Tempo <= 0 {
		return fmt.Errorf("tempo rounding must be positive, got %v", r.Tempo)
	}
	return nil
}

func floor(v, modulus int64) int64 {
	return v - v%modulus
}

// Apply floor-rounds the velocities, duration, delay and tempo of n.
// It is pure and idempotent.
func (r Rounding) Apply(n model.Note) model.Note {
	n.StartVelocity = uint8(floor(int64(n.StartVelocity), r.Velocity))
	n.EndVelocity = uint8(floor(int64(n.EndVelocity), r.Velocity))
	n.NoteDuration = floor(n.NoteDuration, r.Duration)
	n.NextNoteDelay = floor(n.NextNoteDelay, r.Duration)
	n.Tempo = floor(n.Tempo, r.Tempo)
	return n
}

// ApplyAll rounds a window of notes into a fresh slice.
func (r Rounding) ApplyAll(notes []model.Note) []model.Note {
	res := make([]model.Note, len(notes))
	for i, n := range notes {
		res[i] = r.Apply(n)
	}
	return res
}

// ContextKey builds the lookup key for a window of already-quantized notes,
// most recent last.
func ContextKey(window []model.Note) string {
	parts := make([]string, len(window))
	for i, n := range window {
		id := n.ID()
		parts[i] = fmt.Sprintf("%v.%v.%v.%v.%v.%v.%v",
			id.Key, id.StartVelocity, id.EndVelocity,
			id.NoteDuration, id.NextNoteDelay, id.Tempo, id.Instrument)
	}
	return strings.Join(parts, "|")
}
