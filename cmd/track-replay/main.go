// Command track-replay drives tracks from a recorded match/miss event log
// and reports how long each track was allowed to coast.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/banshee-data/coasttrack/internal/config"
	"github.com/banshee-data/coasttrack/internal/plotting"
	"github.com/banshee-data/coasttrack/internal/replay"
	"github.com/banshee-data/coasttrack/internal/trackstore"
	"github.com/banshee-data/coasttrack/internal/tracking"
	"github.com/banshee-data/coasttrack/internal/version"
)

func main() {
	input := flag.String("in", "-", "event log (JSON lines), - for stdin")
	configPath := flag.String("config", "", "tuning config JSON (defaults when empty)")
	dbPath := flag.String("db", "", "SQLite database to store replayed tracks")
	chartDir := flag.String("chart-dir", "", "directory for per-track HTML charts")
	png := flag.Bool("png", false, "also write PNG height plots into -chart-dir")
	verbose := flag.Bool("verbose", false, "log every frame")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.EmptyTuningConfig()
	if *configPath != "" {
		loaded, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	tracking.SetLogWriters(os.Stderr, os.Stderr, nil)
	if *verbose {
		tracking.SetLogWriters(os.Stderr, os.Stderr, os.Stderr)
	}

	var r io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("Failed to open event log: %v", err)
		}
		defer f.Close()
		r = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := replay.Options{
		MaxExtrapolationLength: cfg.GetMaxExtrapolationLength(),
		Params:                 tracking.ParamsFromTuning(cfg),
	}
	if *verbose {
		opts.OnFrame = func(fr replay.FrameReport) {
			log.Printf("frame=%d track=%d event=%s box=%s run=%d budget=%d terminate=%v",
				fr.Frame, fr.TrackID, fr.Event, fr.Box, fr.ExtrapolationLength, fr.Budget, fr.Terminate)
		}
	}

	res, err := replay.Run(ctx, r, opts)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	for _, id := range res.TrackIDs() {
		t := res.Tracks[id]
		status := "alive"
		if frame, ok := res.TerminatedAt[id]; ok {
			status = fmt.Sprintf("terminated@%d", frame)
		}
		fmt.Printf("track %d class=%s len=%d true=%d max_streak=%d coasting=%d budget=%d %s\n",
			id, t.ObjectClass(), t.Length(), t.NumTrueDetections(), t.MaxConsecutiveDetections(),
			t.ExtrapolationLength(), t.MaxExtrapolationLength(), status)
	}

	if *dbPath != "" {
		if err := saveRun(*dbPath, *input, res); err != nil {
			log.Fatalf("Failed to store tracks: %v", err)
		}
	}

	if *chartDir != "" {
		if err := writeCharts(*chartDir, res, *png); err != nil {
			log.Fatalf("Failed to write charts: %v", err)
		}
	}
}

func saveRun(path, source string, res *replay.Result) error {
	store, err := trackstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.StartRun(source)
	if err != nil {
		return err
	}
	for _, id := range res.TrackIDs() {
		if err := store.SaveTrack(runID, res.Tracks[id].Snapshot()); err != nil {
			return err
		}
	}
	log.Printf("Stored %d tracks as run %s in %s", len(res.Tracks), runID, path)
	return nil
}

func writeCharts(dir string, res *replay.Result, png bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, id := range res.TrackIDs() {
		snap := res.Tracks[id].Snapshot()

		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("track_%04d.html", id)))
		if err != nil {
			return err
		}
		err = plotting.RenderHTML(f, snap)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}

		if png {
			if err := plotting.SavePNG(filepath.Join(dir, fmt.Sprintf("track_%04d.png", id)), snap); err != nil {
				return err
			}
		}
	}
	log.Printf("Wrote charts for %d tracks to %s", len(res.Tracks), dir)
	return nil
}
