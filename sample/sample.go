package sample

import (
	"fmt"
	"math/rand"

	"github.com/onurmatik/MarkovMusic/chain"
	"github.com/onurmatik/MarkovMusic/model"
)

// Pick draws one continuation from e with probability proportional to its
// accumulated count: r uniform in [0, total), first option whose
// cumulative count exceeds r.
//
// An empty or non-positive distribution means the index invariant was
// broken upstream, so that panics rather than returning an error.
func Pick(e *chain.Entry, rng *rand.Rand) model.Continuation {
	total := e.Total()
	if len(e.Options) == 0 || total <= 0 {
		panic(fmt.Sprintf("continuation distribution broken for context %q", e.Key))
	}
	r := rng.Float64() * total
	var cum float64
	for i, count := range e.Counts {
		cum += count
		if r < cum {
			return e.Options[i]
		}
	}
	// r == total can only happen through float round-off
	return e.Options[len(e.Options)-1]
}
