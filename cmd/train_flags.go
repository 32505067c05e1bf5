package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onurmatik/MarkovMusic/chain"
	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/corpus"
	"github.com/onurmatik/MarkovMusic/file"
	"github.com/onurmatik/MarkovMusic/quantize"
)

// trainFlags are the model hyperparameters shared by the generate and
// train commands.
type trainFlags struct {
	order            int
	weights          []float64
	channels         []int
	velocityRounding int64
	durationRounding int64
	tempoRounding    int64
}

func (f *trainFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.order, "order", constants.DefaultOrder, "order of the Markov chain")
	cmd.Flags().Float64SliceVar(&f.weights, "weight", nil, "per-source training weight, one per input file (default 1.0 each)")
	cmd.Flags().IntSliceVar(&f.channels, "channel", nil, "MIDI channels to keep (default all)")
	cmd.Flags().Int64Var(&f.velocityRounding, "velocity-rounding", constants.DefaultVelocityRounding, "velocity quantization modulus")
	cmd.Flags().Int64Var(&f.durationRounding, "duration-rounding", constants.DefaultDurationRounding, "duration/delay quantization modulus in ticks")
	cmd.Flags().Int64Var(&f.tempoRounding, "tempo-rounding", constants.DefaultTempoRounding, "tempo quantization modulus")
}

func (f *trainFlags) config() chain.Config {
	return chain.Config{
		Order: f.order,
		Rounding: quantize.Rounding{
			Velocity: f.velocityRounding,
			Duration: f.durationRounding,
			Tempo:    f.tempoRounding,
		},
	}
}

func (f *trainFlags) corpusOptions() corpus.Options {
	if len(f.channels) == 0 {
		return corpus.Options{}
	}
	channels := make(map[uint8]bool)
	for _, ch := range f.channels {
		channels[uint8(ch)] = true
	}
	return corpus.Options{Channels: channels}
}

// trainedCorpus decodes every input file and folds it into one merged
// index via per-source shards. Configuration problems surface before any
// file is read; a file that fails to decode is skipped, not fatal.
func trainedCorpus(files []string, f *trainFlags) (*chain.ContextIndex, corpus.Sequence, error) {
	weights, err := file.SourceWeights(files, f.weights)
	if err != nil {
		return nil, corpus.Sequence{}, err
	}
	cfg := f.config()
	index, err := chain.New(cfg)
	if err != nil {
		return nil, corpus.Sequence{}, err
	}

	opts := f.corpusOptions()
	params := corpus.Sequence{
		TicksPerBeat: 960,
		TimeSigNum:   constants.DefaultTimeSigNumerator,
		TimeSigDen:   constants.DefaultTimeSigDenominator,
	}
	for i, path := range files {
		fmt.Printf("Reading file: %v\n", path)
		seq, err := corpus.Load(path, opts)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		shard, err := chain.New(cfg)
		if err != nil {
			return nil, corpus.Sequence{}, err
		}
		if err := shard.Train(seq.Notes, weights[i]); err != nil {
			return nil, corpus.Sequence{}, err
		}
		index.Merge(shard)
		params.TicksPerBeat = seq.TicksPerBeat
		params.TimeSigNum = seq.TimeSigNum
		params.TimeSigDen = seq.TimeSigDen
		fmt.Printf("%v notes converted\n", len(seq.Notes))
	}
	fmt.Printf("\n%v mappings made (order %v)\n", index.Size(), cfg.Order)
	return index, params, nil
}
