package corpus

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/midifile"
	"github.com/onurmatik/MarkovMusic/model"
)

type Options struct {
	// Channels to keep; empty or nil keeps every channel.
	Channels map[uint8]bool
}

func (o Options) wantChannel(ch uint8) bool {
	return len(o.Channels) == 0 || o.Channels[ch]
}

// Sequence is one decoded source: a flat, timestamp-ordered note list plus
// the parameters needed to re-encode output against the same grid.
type Sequence struct {
	Notes        []model.Note
	TicksPerBeat int
	TimeSigNum   int
	TimeSigDen   int
}

// Load decodes one MIDI file into a Sequence.
func Load(path string, opts Options) (Sequence, error) {
	s, err := midifile.Read(path)
	if err != nil {
		return Sequence{}, errors.Wrapf(err, "decoding %v", path)
	}
	return FromSMF(s, opts), nil
}

// FromSMF merges every track of s into one timestamp-sorted note sequence.
// Each note carries the tempo and instrument most recently active at or
// before its onset, and NextNoteDelay is the delta to the following note's
// onset (0 for the last note).
func FromSMF(s *smf.SMF, opts Options) Sequence {
	res := Sequence{
		TicksPerBeat: 960,
		TimeSigNum:   constants.DefaultTimeSigNumerator,
		TimeSigDen:   constants.DefaultTimeSigDenominator,
	}
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		res.TicksPerBeat = int(mt)
	}

	var merged []model.Note
	for _, tr := range s.Tracks {
		notes, num, den := parseTrack(tr, opts)
		merged = append(merged, notes...)
		if num > 0 && den > 0 {
			res.TimeSigNum, res.TimeSigDen = num, den
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})
	for i := 0; i+1 < len(merged); i++ {
		merged[i].NextNoteDelay = merged[i+1].Timestamp - merged[i].Timestamp
	}
	res.Notes = merged
	return res
}

type change struct {
	tick  model.Tick
	value int64
}

type openNote struct {
	key      uint8
	velocity uint8
	tick     model.Tick
}

func parseTrack(tr smf.Track, opts Options) (notes []model.Note, timeSigNum, timeSigDen int) {
	var absTicks model.Tick
	var open []openNote
	var tempos, programs []change

	for _, ev := range tr {
		absTicks += model.Tick(ev.Delta)
		var ch, key, vel, prog uint8
		var num, den uint8
		var bpm float64
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			if !opts.wantChannel(ch) {
				continue
			}
			if vel == 0 {
				// running-status convention: note-on with velocity 0 is a note-off
				notes, open = closeNote(notes, open, key, 0, absTicks)
			} else {
				open = append(open, openNote{key: key, velocity: vel, tick: absTicks})
			}
		case ev.Message.GetNoteOff(&ch, &key, &vel):
			if !opts.wantChannel(ch) {
				continue
			}
			notes, open = closeNote(notes, open, key, vel, absTicks)
		case ev.Message.GetMetaTempo(&bpm):
			tempos = append(tempos, change{tick: absTicks, value: int64(math.Round(60000000 / bpm))})
		case ev.Message.GetProgramChange(&ch, &prog):
			programs = append(programs, change{tick: absTicks, value: int64(prog)})
		case ev.Message.GetMetaMeter(&num, &den):
			timeSigNum, timeSigDen = int(num), int(den)
		}
	}

	resolve(notes, tempos, programs)
	return notes, timeSigNum, timeSigDen
}

// closeNote pairs a note-off with the oldest open note of the same key.
func closeNote(notes []model.Note, open []openNote, key, endVelocity uint8, now model.Tick) ([]model.Note, []openNote) {
	for j, on := range open {
		if on.key == key {
			notes = append(notes, model.Note{
				Key:           on.key,
				StartVelocity: on.velocity,
				EndVelocity:   endVelocity,
				NoteDuration:  now - on.tick,
				Tempo:         constants.DefaultTempo,
				Timestamp:     on.tick,
			})
			open = append(open[:j], open[j+1:]...)
			break
		}
	}
	return notes, open
}

// resolve assigns each note the tempo and instrument most recently active
// at or before its onset. Change lists are already in tick order because
// they were collected on a single forward pass.
func resolve(notes []model.Note, tempos, programs []change) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp < notes[j].Timestamp
	})
	tempo := int64(constants.DefaultTempo)
	instrument := int64(0)
	ti, pi := 0, 0
	for i := range notes {
		for ti < len(tempos) && notes[i].Timestamp >= tempos[ti].tick {
			tempo = tempos[ti].value
			ti++
		}
		notes[i].Tempo = tempo
		for pi < len(programs) && notes[i].Timestamp >= programs[pi].tick {
			instrument = programs[pi].value
			pi++
		}
		notes[i].Instrument = uint8(instrument)
	}
}
