package midifile

import (
	"bytes"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/onurmatik/MarkovMusic/model"
)

// Read parses an SMF file from disk.
func Read(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, errors.Wrap(err, "reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

type timedMessage struct {
	tick model.Tick
	msg  []byte
}

// Build encodes a generated sequence as a single-track SMF. A tempo or
// program event is emitted whenever the value differs from the previous
// note's; every event is placed at its absolute tick and the whole list
// is sorted before delta encoding.
func Build(notes []model.Note, ticksPerBeat, timeSigNum, timeSigDen int) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var events []timedMessage
	var tick model.Tick
	tempo := int64(-1)
	instrument := int64(-1)
	for _, n := range notes {
		if n.Tempo != tempo {
			events = append(events, timedMessage{tick, smf.MetaTempo(60000000.0 / float64(n.Tempo))})
			tempo = n.Tempo
		}
		if int64(n.Instrument) != instrument {
			events = append(events, timedMessage{tick, midi.ProgramChange(0, n.Instrument)})
			instrument = int64(n.Instrument)
		}
		events = append(events, timedMessage{tick, midi.NoteOn(0, n.Key, n.StartVelocity)})
		events = append(events, timedMessage{tick + n.NoteDuration, midi.NoteOffVelocity(0, n.Key, n.EndVelocity)})
		tick += n.NextNoteDelay
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("MarkovMusic track"))
	tr.Add(0, smf.MetaMeter(uint8(timeSigNum), uint8(timeSigDen)))
	var prev model.Tick
	for _, ev := range events {
		tr.Add(uint32(ev.tick-prev), ev.msg)
		prev = ev.tick
	}
	tr.Close(0)
	s.Add(tr)
	return s
}

// Write encodes notes and saves them to path.
func Write(path string, notes []model.Note, ticksPerBeat, timeSigNum, timeSigDen int) error {
	if len(notes) == 0 {
		return errors.New("no notes to write")
	}
	return Build(notes, ticksPerBeat, timeSigNum, timeSigDen).WriteFile(path)
}
