package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"vocal-coach-go/internal/audio"
	"vocal-coach-go/internal/benchmark"
	"vocal-coach-go/internal/config"
	"vocal-coach-go/internal/emotion"
	"vocal-coach-go/internal/exercise"
	"vocal-coach-go/internal/feedback"
	"vocal-coach-go/internal/logger"
	"vocal-coach-go/internal/pipeline"
	"vocal-coach-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.New().WithError(err).Fatal("failed to load config")
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	log.WithField("service", "vocal-coach-go").Info("starting service")

	// load exercise catalog into memory
	log.WithField("exercises_path", cfg.Paths.Exercises).Info("loading exercise catalog")
	exercises, err := exercise.Load(cfg.Paths.Exercises)
	if err != nil {
		log.WithError(err).Fatal("failed to load exercise catalog")
	}
	catalog := exercise.NewCatalog(exercises)
	log.WithField("total_exercises", len(exercises)).Info("exercise catalog loaded")

	benchmarks, err := benchmark.NewStore(cfg.Paths.Benchmarks)
	if err != nil {
		log.WithError(err).Fatal("failed to open benchmark store")
	}

	var transcriber transcription.Transcriber
	if cfg.Transcription.URL != "" {
		transcriber = transcription.NewClient(cfg.Transcription.URL, cfg.Transcription.Timeout, log)
	} else {
		log.Warn("no transcription url configured, analyses will run without transcripts")
	}
	var classifier emotion.Classifier
	if cfg.Emotion.URL != "" {
		classifier = emotion.NewClient(cfg.Emotion.URL, cfg.Emotion.Timeout, log)
	} else {
		log.Warn("no emotion url configured, analyses will fall back to neutral")
	}

	analyzer := pipeline.New(transcriber, classifier, log)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// exercise catalog
	mux.HandleFunc("/exercises", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).WithField("handler", "exercises").Info("catalog requested")
		writeJSON(w, http.StatusOK, catalog.List(), log)
	})

	// analyze endpoint (multipart wav upload, optional exercise_id)
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		reqLog.Info("analyze request received")

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		data, err := readUpload(r)
		if err != nil {
			reqLog.WithError(err).Warn("bad upload")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		opts := pipeline.Options{TargetText: r.FormValue("target_text")}
		if id := r.FormValue("exercise_id"); id != "" {
			ex, ok := catalog.Get(id)
			if !ok {
				reqLog.WithField("exercise_id", id).Warn("unknown exercise")
				http.Error(w, "unknown exercise_id", http.StatusNotFound)
				return
			}
			opts.TargetText = ex.TextContent
			rec, ok, err := benchmarks.Load(id)
			if err != nil {
				reqLog.WithError(err).Error("benchmark load error")
				http.Error(w, "benchmark load error", http.StatusInternalServerError)
				return
			}
			if ok {
				opts.Benchmark = &feedback.Subject{
					Descriptors: rec.Descriptors,
					Emotions:    rec.Emotions,
					Score:       rec.Score,
					Transcript:  rec.Transcript,
				}
			} else {
				reqLog.WithField("exercise_id", id).Info("no benchmark recorded, falling back to standalone feedback")
			}
		}

		start := time.Now()
		res, err := analyzer.Analyze(r.Context(), audio.FromBuffer(data), opts)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("analyzer finished")
		if err != nil {
			reqLog.WithError(err).Warn("analyzer returned error")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusOK, res, log)
	})

	// record a benchmark performance for an exercise
	mux.HandleFunc("/benchmark", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "benchmark")
		reqLog.Info("benchmark upload received")

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := r.FormValue("exercise_id")
		if _, ok := catalog.Get(id); !ok {
			http.Error(w, "unknown exercise_id", http.StatusNotFound)
			return
		}
		data, err := readUpload(r)
		if err != nil {
			reqLog.WithError(err).Warn("bad upload")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := analyzer.Analyze(r.Context(), audio.FromBuffer(data), pipeline.Options{})
		if err != nil {
			reqLog.WithError(err).Warn("analyzer returned error")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		rec, err := benchmarks.Save(benchmark.Record{
			ExerciseID:  id,
			Descriptors: res.Descriptors,
			Emotions:    res.Emotions,
			Score:       res.Score,
			Transcript:  res.Transcript,
		})
		if err != nil {
			reqLog.WithError(err).Error("benchmark save error")
			http.Error(w, "benchmark save error", http.StatusInternalServerError)
			return
		}
		reqLog.WithField("benchmark_id", rec.ID).WithField("exercise_id", id).Info("benchmark recorded")
		writeJSON(w, http.StatusOK, rec, log)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// readUpload pulls the wav payload from the multipart "file" field.
func readUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}
