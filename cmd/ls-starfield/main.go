// Command ls-starfield is a terminal UI for exploring nearby stars from the
// Gaia catalog in 3D.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/config"
	"github.com/litescript/ls-starfield/internal/logging"
	"github.com/litescript/ls-starfield/internal/scene"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/ui"
)

const (
	minRefresh = 30 * time.Second
	maxRefresh = 24 * time.Hour
)

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML/TOML/JSON)")
	catalogFile := flag.String("catalog", "", "Load stars from a local TAP-JSON or CSV file instead of querying Gaia")
	catalogURL := flag.String("url", "", "TAP service URL (default: Gaia archive)")
	refresh := flag.Duration("refresh", 0, "Catalog refresh interval (e.g., 5m, 1h)")
	maxStars := flag.Int("max-stars", 0, "Maximum stars to request")
	maxDistance := flag.Float64("max-distance", 0, "Maximum distance in parsecs")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	summaryMode := flag.Bool("summary", false, "Print a batch summary instead of the TUI")
	exportPath := flag.String("export", "", "Export the batch to a .json or .csv file (use - for JSON on stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override config file and environment.
	if *catalogFile != "" {
		cfg.CatalogFile = *catalogFile
	}
	if *catalogURL != "" {
		cfg.CatalogURL = *catalogURL
	}
	if *refresh != 0 {
		cfg.Refresh = *refresh
	}
	if *maxStars != 0 {
		cfg.MaxStars = *maxStars
	}
	if *maxDistance != 0 {
		cfg.MaxDistancePc = *maxDistance
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if cfg.Refresh < minRefresh {
		cfg.Refresh = minRefresh
	} else if cfg.Refresh > maxRefresh {
		cfg.Refresh = maxRefresh
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.Refresh
	stateMgr := state.NewManager(stateCfg)

	var fetcher *catalog.Fetcher
	if cfg.CatalogFile == "" {
		opts := []catalog.FetcherOption{
			catalog.WithLimits(cfg.MaxStars, cfg.MaxDistancePc),
		}
		if cfg.CatalogURL != "" {
			opts = append(opts, catalog.WithURL(cfg.CatalogURL))
		}
		fetcher = catalog.NewFetcher(opts...)
	}

	if *summaryMode || *exportPath != "" {
		runHeadless(ctx, cfg, fetcher, *summaryMode, *exportPath, logger)
		return
	}

	// The TUI owns the terminal; keep stderr quiet unless debugging.
	if logging.ParseLevel(cfg.LogLevel) > logging.LevelDebug {
		logger = logging.Discard()
	}

	model := ui.New(stateMgr, cfg.CameraState(), cfg.BandSet())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.CatalogFile != "" {
		go runFileSource(ctx, cfg.CatalogFile, stateMgr, p, logger.With("watch"))
	} else {
		go runFetchLoop(ctx, fetcher, stateMgr, p, logger.With("fetch"))
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runFetchLoop queries the TAP service on the refresh interval and pushes
// batches into the state manager and the running program.
func runFetchLoop(ctx context.Context, fetcher *catalog.Fetcher, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	doFetch(ctx, fetcher, stateMgr, p, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("fetch loop shutting down")
			return
		case <-ticker.C:
			doFetch(ctx, fetcher, stateMgr, p, logger)
		}
	}
}

func doFetch(ctx context.Context, fetcher *catalog.Fetcher, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	logger.Debug("querying TAP service")

	result := fetcher.Fetch(ctx)
	if result.Error != nil {
		logger.Error("fetch failed: %v", result.Error)
		stateMgr.SetError(result.Error)
		p.Send(ui.ErrorMsg{Error: result.Error})
		return
	}

	records, droppedRows := catalog.NormalizeAll(result.Rows)
	entities, droppedEst := scene.Build(records)
	logger.Debug("fetched %d stars (%d dropped) in %v",
		len(entities), droppedRows+droppedEst, result.Duration)

	stateMgr.Replace(entities, droppedRows+droppedEst, result.Duration)
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

// runFileSource loads a local catalog file and reloads it whenever the file
// changes on disk.
func runFileSource(ctx context.Context, path string, stateMgr *state.Manager, p *tea.Program, logger *logging.Logger) {
	load := func() {
		start := time.Now()
		rows, err := catalog.ParseFile(path)
		if err != nil {
			logger.Error("load %s: %v", path, err)
			stateMgr.SetError(err)
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		records, droppedRows := catalog.NormalizeAll(rows)
		entities, droppedEst := scene.Build(records)
		stateMgr.Replace(entities, droppedRows+droppedEst, time.Since(start))
		p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
		logger.Info("loaded %d stars from %s", len(entities), path)
	}

	load()

	watcher, err := catalog.NewWatcher(path)
	if err != nil {
		logger.Warn("file watch unavailable: %v", err)
		<-ctx.Done()
		return
	}
	if err := watcher.Start(); err != nil {
		logger.Warn("file watch unavailable: %v", err)
		<-ctx.Done()
		return
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-watcher.Changes:
			logger.Debug("catalog file changed, reloading")
			load()
		}
	}
}

// runHeadless loads or fetches one batch, then prints a summary and/or
// writes an export file.
func runHeadless(ctx context.Context, cfg config.Config, fetcher *catalog.Fetcher, summary bool, exportPath string, logger *logging.Logger) {
	var (
		rows      []catalog.RawRow
		fetchedAt = time.Now()
		err       error
	)
	if cfg.CatalogFile != "" {
		rows, err = catalog.ParseFile(cfg.CatalogFile)
	} else {
		result := fetcher.Fetch(ctx)
		rows, fetchedAt, err = result.Rows, result.FetchedAt, result.Error
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	records, droppedRows := catalog.NormalizeAll(rows)
	entities, droppedEst := scene.Build(records)
	dropped := droppedRows + droppedEst
	logger.Debug("batch ready: %d stars, %d dropped", len(entities), dropped)

	if exportPath != "" {
		if err := writeExport(exportPath, entities); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if summary {
		scene.WriteSummary(os.Stdout, entities, dropped, fetchedAt)
	}
}

func writeExport(path string, entities []scene.StarEntity) error {
	if path == "-" {
		return scene.WriteJSON(os.Stdout, entities)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = scene.WriteCSV(f, entities)
	default:
		err = scene.WriteJSON(f, entities)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	return f.Close()
}
