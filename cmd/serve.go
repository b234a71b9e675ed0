package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gpxtone/gpxtone/cache"
	"github.com/gpxtone/gpxtone/geo"
	"github.com/gpxtone/gpxtone/gpx"
	"github.com/gpxtone/gpxtone/midi"
	"github.com/gpxtone/gpxtone/model"
	"github.com/gpxtone/gpxtone/resample"
	"github.com/gpxtone/gpxtone/sonify"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string
var serveSnapshot string

// scoreCache keeps finished scores keyed by (trail bytes, config), so
// re-downloads of the same upload skip the whole pipeline.
var scoreCache = cache.New()

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveSnapshot, "cache-snapshot", "",
		"path of the score cache snapshot, loaded on start and saved on shutdown")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the sonification HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, gpx.ErrNoTrackPoints),
		errors.Is(err, geo.ErrNoElevationData),
		errors.Is(err, resample.ErrNonPositiveStep):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// HandleSonify accepts raw GPX bytes, config as query parameters, and
// responds with SMF bytes.
func HandleSonify(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "request body must be a gpx document")
		return
	}

	cfg, err := configFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	cfgFP, err := cache.ConfigFingerprint(cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	key := cache.Key{Trail: cache.TrailFingerprint(raw), Config: cfgFP}

	s, ok := scoreCache.Get(key)
	if !ok {
		trail, err := gpx.ParseBytes(raw)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		s, err = sonify.Sonify(trail, cfg)
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		scoreCache.Put(key, s)
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", uuid.New().String()+".mid"))
	if err := midi.Write(s, w); err != nil {
		log.Printf("writing smf response: %v", err)
	}
}

// HandleInspect accepts raw GPX bytes and responds with the trail
// overview the inspect command prints.
func HandleInspect(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil || len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "request body must be a gpx document")
		return
	}

	cfg, err := configFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	trail, err := gpx.ParseBytes(raw)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	geom, err := geo.Compute(trail.Points)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	step := cfg.Step(geom)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.TrailOverview{
		Name:                trail.Name,
		NumPoints:           len(trail.Points),
		TotalDistanceMeters: geom.TotalDistanceMeters,
		MinElevation:        geom.MinElevation,
		MaxElevation:        geom.MaxElevation,
		StepMeters:          step,
		ProjectedEvents:     int(geom.TotalDistanceMeters / step),
	})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func serve() {
	if serveSnapshot != "" {
		loadCacheSnapshot(serveSnapshot)
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/sonify", HandleSonify).Methods("POST")
	router.HandleFunc("/inspect", HandleInspect).Methods("POST")
	router.HandleFunc("/healthz", HandleHealth).Methods("GET")

	srv := &http.Server{
		Addr:    serveAddr,
		Handler: cors.Default().Handler(router),
	}

	go func() {
		log.Printf("listening on %v", serveAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutting down: %v", err)
	}
	if serveSnapshot != "" {
		saveCacheSnapshot(serveSnapshot)
	}
}

func loadCacheSnapshot(path string) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Printf("opening cache snapshot: %v", err)
		return
	}
	defer f.Close()
	if err := scoreCache.LoadFrom(f); err != nil {
		log.Printf("loading cache snapshot: %v", err)
		return
	}
	log.Printf("loaded %v cached scores from %v", scoreCache.Len(), path)
}

func saveCacheSnapshot(path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("creating cache snapshot: %v", err)
		return
	}
	defer f.Close()
	if err := scoreCache.SaveTo(f); err != nil {
		log.Printf("saving cache snapshot: %v", err)
		return
	}
	log.Printf("saved %v cached scores to %v", scoreCache.Len(), path)
}
