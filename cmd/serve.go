package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dbuik1/talkingscores/analyse"
	"github.com/dbuik1/talkingscores/midifile"
	"github.com/dbuik1/talkingscores/model"
	"github.com/dbuik1/talkingscores/musicxml"
	"github.com/dbuik1/talkingscores/options"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the analysis server",
	Long:  `Runs the analysis server`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func handleAnalyse(w http.ResponseWriter, r *http.Request) {
	dat, err := readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	score, err := readScoreBytes(dat)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	opts := options.Default()
	if raw := r.FormValue("options"); raw != "" {
		// YAML is a superset of JSON, so either works here
		if err := yaml.Unmarshal([]byte(raw), &opts); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("parsing options: %w", err))
			return
		}
	}
	opts.Apply(score)

	analyser := analyse.NewAnalyser(opts.Describe())
	analyser.SetScore(score)

	res := model.AnalysisResponse{
		ID:             uuid.NewString(),
		Title:          score.Title,
		GeneralSummary: analyser.GeneralSummary,
		Parts:          analyser.Summaries(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// readUpload accepts the score as a multipart "file" field or as the raw
// request body.
func readUpload(r *http.Request) ([]byte, error) {
	if f, _, err := r.FormFile("file"); err == nil {
		defer f.Close()
		return io.ReadAll(f)
	}
	dat, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(dat) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return dat, nil
}

func readScoreBytes(dat []byte) (*model.Score, error) {
	if bytes.HasPrefix(dat, []byte("MThd")) {
		return midifile.ReadBytes(dat)
	}
	return musicxml.ParseBytes(dat)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyse", handleAnalyse).Methods("POST")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
