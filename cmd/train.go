package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/file"
	"github.com/onurmatik/MarkovMusic/model"
	"github.com/onurmatik/MarkovMusic/util"
)

var trainCmdFlags struct {
	trainFlags
}

func init() {
	trainCmdFlags.trainFlags.register(trainCmd)
	rootCmd.AddCommand(trainCmd)
}

var trainCmd = &cobra.Command{
	Use:   "train MIDI_FILE...",
	Short: "Trains a model and saves it to the model dir",
	Long:  `Trains a Markov model on the given MIDI files and saves it as a reusable artifact.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Train(args)
	},
}

// Train builds a model from the given files and writes the snapshot plus
// its manifest into the model dir.
func Train(files []string) error {
	index, params, err := trainedCorpus(files, &trainCmdFlags.trainFlags)
	if err != nil {
		return err
	}
	if index.Size() == 0 {
		return fmt.Errorf("no notes in any input, nothing to save")
	}

	dir := constants.GetModelDir()
	util.EnsureDir(dir)
	name := uuid.New().String() + ".dat"
	index.Save(filepath.Join(dir, name))

	manifest := model.Manifest{
		ModelFile:    name,
		TicksPerBeat: params.TicksPerBeat,
		TimeSigNum:   params.TimeSigNum,
		TimeSigDen:   params.TimeSigDen,
		Sources:      file.CreateFileNumMap(files),
	}
	util.CreateBinary(filepath.Join(dir, constants.ManifestFilename), manifest)
	fmt.Printf("Model saved to %v\n", filepath.Join(dir, name))
	return nil
}
