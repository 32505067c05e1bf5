package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/onurmatik/MarkovMusic/generate"
	"github.com/onurmatik/MarkovMusic/midifile"
)

var generateFlags struct {
	trainFlags
	outputFile  string
	maxMeasures int
	maxNotes    int
	seed        int64
}

func init() {
	generateFlags.trainFlags.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateFlags.outputFile, "output-file", "o", "output.mid", "output MIDI file name")
	generateCmd.Flags().IntVar(&generateFlags.maxMeasures, "max-measures", -1, "stop after this many measures (-1 = no cap)")
	generateCmd.Flags().IntVar(&generateFlags.maxNotes, "max-notes", 0, "stop after this many notes (0 = no cap)")
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate MIDI_FILE...",
	Short: "Generates music from one or more MIDI files",
	Long:  `Trains a Markov model on the given MIDI files and generates a new piece from it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args)
	},
}

func newRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

func runGenerate(files []string) error {
	index, params, err := trainedCorpus(files, &generateFlags.trainFlags)
	if err != nil {
		return err
	}
	if index.Size() == 0 {
		fmt.Println("No mappings available to generate music.")
		return nil
	}

	fmt.Println("Generating music")
	rng, seed := newRand(generateFlags.seed)
	out, err := generate.Run(index, generate.Options{
		Order:        index.Order(),
		MaxMeasures:  generateFlags.maxMeasures,
		MaxNotes:     generateFlags.maxNotes,
		TicksPerBeat: params.TicksPerBeat,
		TimeSigNum:   params.TimeSigNum,
		TimeSigDen:   params.TimeSigDen,
		Rand:         rng,
	})
	if err != nil {
		return err
	}
	if len(out) == 0 {
		fmt.Println("No output to write to file.")
		return nil
	}
	fmt.Printf("%v notes generated (seed %v)\n", len(out), seed)

	err = midifile.Write(generateFlags.outputFile, out, params.TicksPerBeat, params.TimeSigNum, params.TimeSigDen)
	if err != nil {
		return err
	}
	fmt.Printf("Generated music saved to %v\n", generateFlags.outputFile)
	return nil
}
