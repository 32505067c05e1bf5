package file

import (
	"fmt"

	"github.com/onurmatik/MarkovMusic/model"
)

func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// SourceWeights pairs each source path with its training weight. No
// weights at all means every source gets 1.0; otherwise the counts must
// match and every weight must be positive.
func SourceWeights(paths []string, weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		weights = make([]float64, len(paths))
		for i := range weights {
			weights[i] = 1.0
		}
		return weights, nil
	}
	if len(weights) != len(paths) {
		return nil, fmt.Errorf("got %v weights for %v input files", len(weights), len(paths))
	}
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("weight for %v must be positive, got %v", paths[i], w)
		}
	}
	return weights, nil
}
