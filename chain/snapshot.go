package chain

import (
	"github.com/onurmatik/MarkovMusic/model"
	"github.com/onurmatik/MarkovMusic/quantize"
	"github.com/onurmatik/MarkovMusic/util"
)

type snapshotEntry struct {
	Options []model.Continuation
	Counts  []float64
}

type snapshot struct {
	Order    int
	Rounding quantize.Rounding
	Entries  map[string]snapshotEntry
}

// Save writes the index as a gob artifact readable by Load.
func (x *ContextIndex) Save(path string) {
	s := snapshot{
		Order:    x.cfg.Order,
		Rounding: x.cfg.Rounding,
		Entries:  make(map[string]snapshotEntry, len(x.entries)),
	}
	for key, e := range x.entries {
		s.Entries[key] = snapshotEntry{Options: e.Options, Counts: e.Counts}
	}
	util.CreateBinary(path, s)
}

func Load(path string) *ContextIndex {
	s := util.ReadBinaryOrPanic[snapshot](path)
	x := &ContextIndex{
		cfg:     Config{Order: s.Order, Rounding: s.Rounding},
		entries: make(map[string]*Entry, len(s.Entries)),
	}
	for key, se := range s.Entries {
		e := x.entry(key)
		for i, opt := range se.Options {
			e.add(opt, se.Counts[i])
		}
	}
	return x
}
