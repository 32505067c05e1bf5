package model

import "fmt"

// Tick is an absolute position or span in MIDI ticks.
type Tick = int64

// Note is one decoded note event. Timestamp is only meaningful while a
// source file is being assembled into a sequence; it is not part of the
// note's identity, so the same musical event at two different positions
// collapses to the same model state.
type Note struct {
	Key           uint8
	StartVelocity uint8
	EndVelocity   uint8
	NoteDuration  Tick
	NextNoteDelay Tick
	Tempo         int64 // microseconds per quarter note
	Instrument    uint8
	Timestamp     Tick
}

// NoteID is the comparable identity of a Note, everything but Timestamp.
type NoteID struct {
	Key           uint8
	StartVelocity uint8
	EndVelocity   uint8
	NoteDuration  Tick
	NextNoteDelay Tick
	Tempo         int64
	Instrument    uint8
}

func (n Note) ID() NoteID {
	return NoteID{
		Key:           n.Key,
		StartVelocity: n.StartVelocity,
		EndVelocity:   n.EndVelocity,
		NoteDuration:  n.NoteDuration,
		NextNoteDelay: n.NextNoteDelay,
		Tempo:         n.Tempo,
		Instrument:    n.Instrument,
	}
}

func (n Note) String() string {
	return fmt.Sprintf("k: %v sv: %v ev: %v nd: %v nnd: %v",
		n.Key, n.StartVelocity, n.EndVelocity, n.NoteDuration, n.NextNoteDelay)
}
