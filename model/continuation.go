package model

// Continuation is what followed a context during training: a concrete note,
// or the terminal marker recording that the training sequence ended there.
type Continuation struct {
	Note     Note
	Terminal bool
}

// ContinuationID is the comparable identity of a Continuation.
type ContinuationID struct {
	Note     NoteID
	Terminal bool
}

func (c Continuation) ID() ContinuationID {
	if c.Terminal {
		return ContinuationID{Terminal: true}
	}
	return ContinuationID{Note: c.Note.ID()}
}

func (c Continuation) String() string {
	if c.Terminal {
		return "end"
	}
	return c.Note.String()
}
