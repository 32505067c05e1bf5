package constants

import "os"

func GetModelDir() string {
	path := os.Getenv("MODEL_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetSourceDbEndpoint() string {
	return os.Getenv("SOURCE_DB_ENDPOINT")
}

// DefaultTempo is assumed for notes that occur before any tempo event,
// in microseconds per quarter note.
const DefaultTempo = 500000

const DefaultOrder = 3

// Default rounding moduli. The tempo modulus is deliberately huge so that
// nearly all tempo variation collapses into a single bucket.
const (
	DefaultVelocityRounding = 40
	DefaultDurationRounding = 2000
	DefaultTempoRounding    = 1000000000
)

const (
	DefaultTimeSigNumerator   = 4
	DefaultTimeSigDenominator = 4
)

const ManifestFilename = "manifest.dat"
