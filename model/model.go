package model

type FileNumToMidiPath = map[uint32]string

// Manifest describes a saved model artifact: which file holds the gob
// snapshot and the encoding parameters the corpus was decoded with.
type Manifest struct {
	ModelFile    string
	TicksPerBeat int
	TimeSigNum   int
	TimeSigDen   int
	Sources      FileNumToMidiPath
}

type SourceMetadata struct {
	Year    uint
	Artist  string
	Release string
	Title   string
	Weight  float64
}
