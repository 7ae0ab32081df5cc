package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/config"
	"github.com/ayusman/gesturegate/internal/recorder"
	"github.com/ayusman/gesturegate/internal/server"
	"github.com/ayusman/gesturegate/internal/server/api"
	"github.com/ayusman/gesturegate/internal/session"
	"github.com/ayusman/gesturegate/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: standard locations)")
	replayPath := flag.String("replay", "", "replay a recording file, print label stats and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayPath != "" {
		if err := replay(*replayPath, cfg.ClassifierTuning()); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	fmt.Println("Gesture Gate - hand gesture counting service")

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	manager := session.NewManager()

	srv := server.New(server.Config{
		Manager: manager,
		Store:   st,
		Defaults: api.SessionDefaults{
			Target:       cfg.Gate.DefaultTarget,
			StableFrames: cfg.Gate.StableFrames,
			Timeout:      time.Duration(cfg.Gate.TimeoutSeconds) * time.Second,
			Tuning:       cfg.ClassifierTuning(),
			RecordingDir: cfg.RecordingDir,
		},
	})

	// Pick up classifier retuning without a restart
	if *configPath != "" {
		watcher, err := config.Watch(*configPath, func(updated config.Config) {
			srv.SetTuning(updated.ClassifierTuning())
			log.Println("Reloaded classifier tuning from config")
		})
		if err != nil {
			log.Printf("Config watcher unavailable: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// replay classifies every frame of a recording with the configured tuning
// and prints the label counts as JSON.
func replay(path string, tuning classify.Config) error {
	stats, err := recorder.Replay(path, classify.New(tuning))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
