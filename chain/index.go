package chain

import (
	"fmt"
	"sort"

	"github.com/onurmatik/MarkovMusic/model"
	"github.com/onurmatik/MarkovMusic/quantize"
	"github.com/onurmatik/MarkovMusic/util"
)

// Entry is the continuation distribution observed after one context.
// Options and Counts are parallel slices in first-seen order; every count
// is strictly positive.
type Entry struct {
	Key     string
	Options []model.Continuation
	Counts  []float64

	slots map[model.ContinuationID]int
}

func (e *Entry) add(c model.Continuation, weight float64) {
	id := c.ID()
	if i, ok := e.slots[id]; ok {
		e.Counts[i] += weight
		return
	}
	e.slots[id] = len(e.Options)
	e.Options = append(e.Options, c)
	e.Counts = append(e.Counts, weight)
}

func (e *Entry) Total() float64 {
	var total float64
	for _, c := range e.Counts {
		total += c
	}
	return total
}

// ContextIndex is the trained model: every quantized window of 1 up to
// order consecutive notes seen during training, mapped to the weighted
// continuations that followed it.
type ContextIndex struct {
	cfg     Config
	entries map[string]*Entry
}

func New(cfg Config) (*ContextIndex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ContextIndex{cfg: cfg, entries: make(map[string]*Entry)}, nil
}

func (x *ContextIndex) Config() Config { return x.cfg }
func (x *ContextIndex) Order() int     { return x.cfg.Order }
func (x *ContextIndex) Size() int      { return len(x.entries) }

func (x *ContextIndex) entry(key string) *Entry {
	e, ok := x.entries[key]
	if !ok {
		e = &Entry{Key: key, slots: make(map[model.ContinuationID]int)}
		x.entries[key] = e
	}
	return e
}

// Train folds one decoded sequence into the index with the given source
// weight. Every window length from 1 up to the order ending at each
// position becomes a context; the note after the window is its
// continuation, or the terminal marker at the end of the sequence.
// An empty sequence contributes nothing.
func (x *ContextIndex) Train(notes []model.Note, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("source weight must be positive, got %v", weight)
	}
	for i := range notes {
		cont := model.Continuation{Terminal: true}
		if i+1 < len(notes) {
			cont = model.Continuation{Note: notes[i+1]}
		}
		for length := 1; length <= x.cfg.Order && length <= i+1; length++ {
			window := x.cfg.Rounding.ApplyAll(notes[i-length+1 : i+1])
			x.entry(quantize.ContextKey(window)).add(cont, weight)
		}
	}
	return nil
}

// Merge folds other into x by summing counts. Merging is commutative and
// associative, so per-source shards can be built independently and
// combined in any order.
func (x *ContextIndex) Merge(other *ContextIndex) {
	for key, oe := range other.entries {
		e := x.entry(key)
		for i, opt := range oe.Options {
			e.add(opt, oe.Counts[i])
		}
	}
}

// Lookup quantizes a window of raw notes and returns its entry, if the
// window was ever observed during training.
func (x *ContextIndex) Lookup(window []model.Note) (*Entry, bool) {
	e, ok := x.entries[quantize.ContextKey(x.cfg.Rounding.ApplyAll(window))]
	return e, ok
}

// Contexts returns every entry sorted by key. The stable order is what
// makes seeded generation reproducible.
func (x *ContextIndex) Contexts() []*Entry {
	keys := util.GetKeys(x.entries)
	sort.Strings(keys)
	res := make([]*Entry, len(keys))
	for i, key := range keys {
		res[i] = x.entries[key]
	}
	return res
}
