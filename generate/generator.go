package generate

import (
	"fmt"
	"math/rand"

	"github.com/onurmatik/MarkovMusic/chain"
	"github.com/onurmatik/MarkovMusic/model"
	"github.com/onurmatik/MarkovMusic/sample"
)

// Model is the trained index the generator walks. chain.ContextIndex
// implements it.
type Model interface {
	Size() int
	Contexts() []*chain.Entry
	Lookup(window []model.Note) (*chain.Entry, bool)
}

type Options struct {
	Order        int
	MaxMeasures  int // negative means no cap
	MaxNotes     int // 0 means no cap
	TicksPerBeat int
	TimeSigNum   int
	TimeSigDen   int
	Rand         *rand.Rand
}

func (o Options) Validate() error {
	if o.Order <= 0 {
		return fmt.Errorf("markov order must be positive, got %v", o.Order)
	}
	if o.TicksPerBeat <= 0 {
		return fmt.Errorf("ticks per beat must be positive, got %v", o.TicksPerBeat)
	}
	if o.TimeSigNum <= 0 || o.TimeSigDen <= 0 {
		return fmt.Errorf("invalid time signature %v/%v", o.TimeSigNum, o.TimeSigDen)
	}
	if o.ticksPerMeasure() <= 0 {
		return fmt.Errorf("measure length comes out to zero ticks for %v/%v at %v ticks per beat",
			o.TimeSigNum, o.TimeSigDen, o.TicksPerBeat)
	}
	if o.Rand == nil {
		return fmt.Errorf("no random source given")
	}
	return nil
}

func (o Options) ticksPerMeasure() model.Tick {
	return int64(o.TicksPerBeat) * int64(o.TimeSigNum) * 4 / int64(o.TimeSigDen)
}

// Run walks the model and produces a fresh note sequence: seed one note,
// then repeatedly sample a continuation for the longest quantized tail
// window the model knows, backing off one note at a time down to a single
// note. The walk ends when a terminal marker is drawn, when no window
// matches, or when the configured measure or note cap is hit.
//
// An empty model produces an empty sequence; callers must treat that as
// "nothing to generate", not as a failure.
func Run(m Model, opts Options) ([]model.Note, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if m.Size() == 0 {
		return nil, nil
	}

	first, ok := seed(m, opts.Rand)
	if !ok {
		return nil, nil
	}
	current := []model.Note{first}
	ticksPerMeasure := opts.ticksPerMeasure()
	accumulated := first.NextNoteDelay
	measures := int(accumulated / ticksPerMeasure)

	for {
		if opts.MaxMeasures >= 0 && measures >= opts.MaxMeasures {
			break
		}
		if opts.MaxNotes > 0 && len(current) >= opts.MaxNotes {
			break
		}
		entry, ok := match(m, current, opts.Order)
		if !ok {
			break
		}
		next := sample.Pick(entry, opts.Rand)
		if next.Terminal {
			break
		}
		current = append(current, next.Note)
		accumulated += next.Note.NextNoteDelay
		measures = int(accumulated / ticksPerMeasure)
	}
	return current, nil
}

// match finds the longest quantized tail window of current, at most order
// notes long, that the model has seen.
func match(m Model, current []model.Note, order int) (*chain.Entry, bool) {
	lowest := len(current) - order
	if lowest < 0 {
		lowest = 0
	}
	for start := lowest; start < len(current); start++ {
		if e, ok := m.Lookup(current[start:]); ok {
			return e, true
		}
	}
	return nil, false
}

// seed picks the first output note: a uniformly random context group, then
// a uniformly random member of that group, so a context's seeding odds
// depend on how many distinct continuations it has, not on its total
// observation count. Terminal draws are re-rolled so the walk always
// starts on a concrete note.
func seed(m Model, rng *rand.Rand) (model.Note, bool) {
	entries := m.Contexts()
	concrete := false
	for _, e := range entries {
		for _, c := range e.Options {
			if !c.Terminal {
				concrete = true
			}
		}
	}
	if !concrete {
		return model.Note{}, false
	}
	for {
		e := entries[rng.Intn(len(entries))]
		c := e.Options[rng.Intn(len(e.Options))]
		if !c.Terminal {
			return c.Note, true
		}
	}
}
