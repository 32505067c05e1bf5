package generate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onurmatik/MarkovMusic/chain"
	"github.com/onurmatik/MarkovMusic/model"
)

func mkNote(key uint8, delay model.Tick) model.Note {
	return model.Note{
		Key:           key,
		StartVelocity: 64,
		NoteDuration:  480,
		NextNoteDelay: delay,
		Tempo:         500000,
	}
}

// cycleNotes repeats keys 60/62/64 so the walk always has somewhere to go.
func cycleNotes(n int, delay model.Tick) []model.Note {
	keys := []uint8{60, 62, 64}
	notes := make([]model.Note, n)
	for i := range notes {
		notes[i] = mkNote(keys[i%len(keys)], delay)
	}
	return notes
}

func trained(t *testing.T, order int, seqs ...[]model.Note) *chain.ContextIndex {
	cfg := chain.DefaultConfig()
	cfg.Order = order
	index, err := chain.New(cfg)
	assert.NoError(t, err)
	for _, s := range seqs {
		assert.NoError(t, index.Train(s, 1.0))
	}
	return index
}

func testOptions(order int, seed int64) Options {
	return Options{
		Order:        order,
		MaxMeasures:  -1,
		MaxNotes:     200,
		TicksPerBeat: 480,
		TimeSigNum:   4,
		TimeSigDen:   4,
		Rand:         rand.New(rand.NewSource(seed)),
	}
}

func TestEmptyModelGeneratesNothing(t *testing.T) {
	index := trained(t, 3)
	out, err := Run(index, testOptions(3, 1))
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestTerminalOnlyModelGeneratesNothing(t *testing.T) {
	// a single-note source trains nothing but terminal continuations
	index := trained(t, 3, []model.Note{mkNote(60, 0)})
	out, err := Run(index, testOptions(3, 1))
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestDeterministicWithFixedSeed(t *testing.T) {
	index := trained(t, 3, cycleNotes(12, 480))

	out1, err := Run(index, testOptions(3, 42))
	assert.NoError(t, err)
	out2, err := Run(index, testOptions(3, 42))
	assert.NoError(t, err)

	assert.NotEmpty(t, out1)
	assert.Equal(t, out1, out2)
}

func TestOutputNotesAreConcrete(t *testing.T) {
	index := trained(t, 3, cycleNotes(12, 480))
	out, err := Run(index, testOptions(3, 7))
	assert.NoError(t, err)
	for _, n := range out {
		// continuations keep the unrounded source note
		assert.Equal(t, uint8(64), n.StartVelocity)
	}
}

func TestMeasureCapZeroStopsImmediately(t *testing.T) {
	// every note is one full 4/4 measure at 480 ticks per beat
	index := trained(t, 3, cycleNotes(6, 1920))
	opts := testOptions(3, 5)
	opts.MaxMeasures = 0

	out, err := Run(index, opts)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestMeasureCapBoundsAccumulatedTicks(t *testing.T) {
	index := trained(t, 3, cycleNotes(9, 1920))
	opts := testOptions(3, 5)
	opts.MaxMeasures = 2

	out, err := Run(index, opts)
	assert.NoError(t, err)
	assert.NotEmpty(t, out)

	var accumulated model.Tick
	for _, n := range out {
		accumulated += n.NextNoteDelay
	}
	assert.LessOrEqual(t, accumulated, model.Tick(2*1920))
}

func TestMaxNotesBoundsOutput(t *testing.T) {
	index := trained(t, 3, cycleNotes(12, 480))
	opts := testOptions(3, 11)
	opts.MaxNotes = 3

	out, err := Run(index, opts)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(out), 3)
}

type recordingModel struct {
	inner   Model
	lengths []int
}

func (r *recordingModel) Size() int                { return r.inner.Size() }
func (r *recordingModel) Contexts() []*chain.Entry { return r.inner.Contexts() }
func (r *recordingModel) Lookup(window []model.Note) (*chain.Entry, bool) {
	r.lengths = append(r.lengths, len(window))
	return r.inner.Lookup(window)
}

func TestNeverLooksBeyondOrder(t *testing.T) {
	index := trained(t, 2, cycleNotes(12, 480))
	rec := &recordingModel{inner: index}

	_, err := Run(rec, testOptions(2, 3))
	assert.NoError(t, err)
	assert.NotEmpty(t, rec.lengths)
	for _, l := range rec.lengths {
		assert.LessOrEqual(t, l, 2)
		assert.Greater(t, l, 0)
	}
}

func TestOptionsValidation(t *testing.T) {
	index := trained(t, 3, cycleNotes(6, 480))

	cases := []Options{
		{},
		{Order: 0, TicksPerBeat: 480, TimeSigNum: 4, TimeSigDen: 4, Rand: rand.New(rand.NewSource(1))},
		{Order: 3, TicksPerBeat: 0, TimeSigNum: 4, TimeSigDen: 4, Rand: rand.New(rand.NewSource(1))},
		{Order: 3, TicksPerBeat: 480, TimeSigNum: 0, TimeSigDen: 4, Rand: rand.New(rand.NewSource(1))},
		{Order: 3, TicksPerBeat: 480, TimeSigNum: 4, TimeSigDen: 4, Rand: nil},
	}
	for _, opts := range cases {
		_, err := Run(index, opts)
		assert.Error(t, err)
	}
}
