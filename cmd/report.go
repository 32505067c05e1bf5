package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/corpus"
	"github.com/onurmatik/MarkovMusic/db"
	"github.com/onurmatik/MarkovMusic/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report CORPUS_DIR",
	Short: "Creates a report over a corpus directory",
	Long:  `Creates a report over a corpus directory`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		report(args[0])
	},
}

type corpusReport struct {
	numFiles    int64
	numSkipped  int64
	noteCounts  []int64
	resolutions map[int]int64
}

func analyzeCorpus(paths []string) corpusReport {
	r := corpusReport{resolutions: make(map[int]int64)}
	for i, path := range paths {
		fmt.Printf("Processing %v of %v midi files\n", i+1, len(paths))
		seq, err := corpus.Load(path, corpus.Options{})
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			r.numSkipped++
			continue
		}
		r.numFiles++
		r.noteCounts = append(r.noteCounts, int64(len(seq.Notes)))
		r.resolutions[seq.TicksPerBeat]++
	}
	return r
}

func report(dir string) {
	paths := util.GatherAllMidiPaths(dir, 0)
	r := analyzeCorpus(paths)

	fmt.Printf("report.numFiles: %v\n", r.numFiles)
	fmt.Printf("report.numSkipped: %v\n", r.numSkipped)
	fmt.Printf("report.numNotes: %v\n", util.Sum(r.noteCounts))
	resolutions := util.GetKeys(r.resolutions)
	sort.Ints(resolutions)
	for _, res := range resolutions {
		fmt.Printf("%v files at %v ticks per beat\n", r.resolutions[res], res)
	}

	if constants.GetSourceDbEndpoint() == "" {
		return
	}
	metadatas := db.GetSourceMetadatas(paths)
	for _, path := range paths {
		if md, ok := metadatas[path]; ok {
			fmt.Printf("%v: %v - %v (weight %v)\n", path, md.Artist, md.Title, md.Weight)
		}
	}
}
