package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/onurmatik/MarkovMusic/chain"
	"github.com/onurmatik/MarkovMusic/constants"
	"github.com/onurmatik/MarkovMusic/generate"
	"github.com/onurmatik/MarkovMusic/model"
	"github.com/onurmatik/MarkovMusic/util"
)

var servedModel *chain.ContextIndex
var servedManifest model.Manifest

var requestCount int64
var logRequests = debounce.New(2 * time.Second)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves generation over HTTP",
	Long:  `Loads the saved model and serves /generate requests against it.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles loads the model artifact the serve command works against.
func LoadServeFiles() {
	dir := constants.GetModelDir()
	servedManifest = util.ReadBinaryOrPanic[model.Manifest](filepath.Join(dir, constants.ManifestFilename))
	servedModel = chain.Load(filepath.Join(dir, servedManifest.ModelFile))
}

func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "could not read request body", 400)
		return
	}
	var input model.GenerateRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		http.Error(w, "could not parse request body: "+err.Error(), 400)
		return
	}

	order := input.Order
	if order == 0 {
		order = servedModel.Order()
	}
	maxMeasures := -1
	if input.MaxMeasures != nil {
		maxMeasures = *input.MaxMeasures
	}
	rng, seed := newRand(input.Seed)
	out, err := generate.Run(servedModel, generate.Options{
		Order:        order,
		MaxMeasures:  maxMeasures,
		MaxNotes:     input.MaxNotes,
		TicksPerBeat: servedManifest.TicksPerBeat,
		TimeSigNum:   servedManifest.TimeSigNum,
		TimeSigDen:   servedManifest.TimeSigDen,
		Rand:         rng,
	})
	if err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if out == nil {
		out = []model.Note{}
	}

	total := atomic.AddInt64(&requestCount, 1)
	logRequests(func() {
		fmt.Printf("%v generate requests served\n", total)
	})

	json.NewEncoder(w).Encode(model.GenerateResponse{
		NumNotes: len(out),
		Seed:     seed,
		Notes:    out,
	})
}

func serve() {
	LoadServeFiles()
	fmt.Printf("Serving model with %v contexts\n", servedModel.Size())

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/generate", HandleGenerate).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", servePort), handler))
}
