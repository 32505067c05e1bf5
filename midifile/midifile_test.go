package midifile_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/onurmatik/MarkovMusic/corpus"
	"github.com/onurmatik/MarkovMusic/midifile"
	"github.com/onurmatik/MarkovMusic/model"
)

func twoNotes() []model.Note {
	return []model.Note{
		{
			Key:           60,
			StartVelocity: 100,
			EndVelocity:   64,
			NoteDuration:  480,
			NextNoteDelay: 480,
			Tempo:         500000,
			Instrument:    0,
			Timestamp:     0,
		},
		{
			Key:           62,
			StartVelocity: 90,
			EndVelocity:   0,
			NoteDuration:  240,
			NextNoteDelay: 0,
			Tempo:         600000,
			Instrument:    5,
			Timestamp:     480,
		},
	}
}

func TestBuildRoundTripsThroughDecoder(t *testing.T) {
	notes := twoNotes()
	s := midifile.Build(notes, 480, 4, 4)

	seq := corpus.FromSMF(s, corpus.Options{})

	assert := assert.New(t)
	assert.Equal(480, seq.TicksPerBeat)
	assert.Equal(4, seq.TimeSigNum)
	assert.Equal(4, seq.TimeSigDen)
	assert.Equal(notes, seq.Notes)
}

func TestBuildEmitsChangeEventsOnlyOnChange(t *testing.T) {
	notes := twoNotes()
	// third note repeats the second note's tempo and instrument
	third := notes[1]
	third.Timestamp = 480
	notes[1].NextNoteDelay = 480
	third.NextNoteDelay = 0
	notes = append(notes, third)

	s := midifile.Build(notes, 480, 4, 4)
	assert.Len(t, s.Tracks, 1)

	var tempos, programs, noteOns int
	for _, ev := range s.Tracks[0] {
		var bpm float64
		var ch, key, vel, prog uint8
		switch {
		case ev.Message.GetMetaTempo(&bpm):
			tempos++
		case ev.Message.GetProgramChange(&ch, &prog):
			programs++
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			if vel > 0 {
				noteOns++
			}
		}
	}

	assert := assert.New(t)
	assert.Equal(2, tempos)
	assert.Equal(2, programs)
	assert.Equal(3, noteOns)
}

func TestBuildSortsEventsByAbsoluteTick(t *testing.T) {
	// a long first note overlaps the second note's onset
	notes := []model.Note{
		{Key: 60, StartVelocity: 100, NoteDuration: 1920, NextNoteDelay: 480, Tempo: 500000},
		{Key: 62, StartVelocity: 90, NoteDuration: 240, NextNoteDelay: 0, Tempo: 500000},
	}
	s := midifile.Build(notes, 480, 4, 4)

	var absTicks model.Tick
	var positions []model.Tick
	for _, ev := range s.Tracks[0] {
		absTicks += model.Tick(ev.Delta)
		positions = append(positions, absTicks)
	}
	for i := 1; i < len(positions); i++ {
		assert.GreaterOrEqual(t, positions[i], positions[i-1])
	}
}

func TestWriteRejectsEmptyOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	assert.Error(t, midifile.Write(path, nil, 480, 4, 4))
}

func TestWriteCreatesReadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	assert.NoError(t, midifile.Write(path, twoNotes(), 480, 4, 4))

	s, err := midifile.Read(path)
	assert.NoError(t, err)
	assert.Len(t, s.Tracks, 1)

	var mt smf.MetricTicks
	var ok bool
	mt, ok = s.TimeFormat.(smf.MetricTicks)
	assert.True(t, ok)
	assert.Equal(t, 480, int(mt))
}
