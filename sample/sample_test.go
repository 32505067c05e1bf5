package sample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onurmatik/MarkovMusic/chain"
	"github.com/onurmatik/MarkovMusic/model"
)

func TestPickSingleOption(t *testing.T) {
	only := model.Continuation{Note: model.Note{Key: 60}}
	e := &chain.Entry{Key: "x", Options: []model.Continuation{only}, Counts: []float64{0.5}}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		assert.Equal(t, only, Pick(e, rng))
	}
}

func TestPickCanReturnTerminal(t *testing.T) {
	e := &chain.Entry{
		Key:     "x",
		Options: []model.Continuation{{Terminal: true}},
		Counts:  []float64{1},
	}
	assert.True(t, Pick(e, rand.New(rand.NewSource(1))).Terminal)
}

func TestPickIsProportionalToCounts(t *testing.T) {
	a := model.Continuation{Note: model.Note{Key: 60}}
	b := model.Continuation{Note: model.Note{Key: 62}}
	e := &chain.Entry{
		Key:     "x",
		Options: []model.Continuation{a, b},
		Counts:  []float64{1, 3},
	}

	rng := rand.New(rand.NewSource(99))
	draws := 4000
	var hitsA int
	for i := 0; i < draws; i++ {
		if Pick(e, rng) == a {
			hitsA++
		}
	}
	// expected 1000 of 4000
	assert.Greater(t, hitsA, 800)
	assert.Less(t, hitsA, 1200)
}

func TestPickPanicsOnBrokenDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Panics(t, func() {
		Pick(&chain.Entry{Key: "empty"}, rng)
	})
	assert.Panics(t, func() {
		Pick(&chain.Entry{
			Key:     "zero",
			Options: []model.Continuation{{Terminal: true}},
			Counts:  []float64{0},
		}, rng)
	})
}
