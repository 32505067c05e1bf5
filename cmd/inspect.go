package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onurmatik/MarkovMusic/chain"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect MODEL_FILE",
	Short: "Inspects a saved model",
	Long:  `Inspects a saved model`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	index := chain.Load(path)
	fmt.Printf("%v contexts (order %v)\n", index.Size(), index.Order())
	for _, e := range index.Contexts() {
		fmt.Printf("context: %v\n", e.Key)
		for i, opt := range e.Options {
			fmt.Printf("  %v (count %v)\n", opt, e.Counts[i])
		}
	}
}
