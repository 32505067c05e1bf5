package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "markovmusic",
	Short: "Markov chain music generation",
	Long:  `Trains a variable-order Markov model on MIDI recordings and generates new music from it.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
