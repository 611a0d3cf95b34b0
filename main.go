// souschef - an LLM-planned cooking run orchestrator.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeranaias/souschef/internal/catalog"
	"github.com/jeranaias/souschef/internal/config"
	"github.com/jeranaias/souschef/internal/cook"
	"github.com/jeranaias/souschef/internal/history"
	"github.com/jeranaias/souschef/internal/llm"
	"github.com/jeranaias/souschef/internal/plan"
	"github.com/jeranaias/souschef/internal/run"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	recipe := flag.String("recipe", "Grilled Cheese Sandwich", "recipe to cook")
	configPath := flag.String("config", "", "explicit config file (TOML)")
	noLLM := flag.Bool("no-llm", false, "skip the decision service, use deterministic fallbacks")
	list := flag.Bool("list", false, "list archived runs and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("souschef %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if *list {
		if err := listArchivedRuns(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	if err := cookRecipe(cfg, *recipe, *noLLM); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads from an explicit file or the default search path.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// cookRecipe runs one recipe end to end, polling the snapshot for display.
func cookRecipe(cfg *config.Config, recipe string, noLLM bool) error {
	// Catalog load is the only start-time-fatal failure in the core.
	watcher, err := catalog.NewWatcher(cfg.DataDir, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	if cfg.Watch.Enabled {
		if err := watcher.Watch(); err != nil {
			return err
		}
		defer watcher.Close()
	}

	var source llm.DecisionSource
	if cfg.LLM.Enabled && !noLLM {
		client := llm.NewClient(&llm.ClientConfig{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		})
		source = llm.NewRemoteSource(client, llm.SourceConfig{
			CallTimeout:       time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
			RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		})
	}

	mgrCfg := run.ManagerConfig{
		Catalog:   watcher.Current,
		Generator: plan.NewGenerator(source),
		Executor: cook.NewExecutor(source, cook.Config{
			MaxDelay: time.Duration(cfg.Cook.MaxStepDelayMs) * time.Millisecond,
		}),
	}

	if cfg.History.Enabled {
		path, err := cfg.HistoryPath()
		if err != nil {
			return err
		}
		store, err := history.NewStore(path)
		if err != nil {
			return err
		}
		defer store.Close()
		mgrCfg.Archiver = store
	}

	mgr := run.NewManager(mgrCfg)

	id, err := mgr.StartRun(context.Background(), recipe)
	if err != nil {
		return err
	}

	fmt.Printf("Cooking %q (run %s)\n", recipe, id)

	// Ctrl-C cancels the run; it finishes in an explicit Cancelled state.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nCancelling...")
		mgr.Cancel(id)
	}()

	pollRun(mgr, id)
	return nil
}

// pollRun polls the query surface until the run reaches a terminal phase,
// printing each transition it observes.
func pollRun(mgr *run.Manager, id string) {
	var lastLine string
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		snap, err := mgr.Snapshot(id)
		if err != nil {
			return
		}

		line := renderSnapshot(snap)
		if line != lastLine {
			fmt.Println(line)
			lastLine = line
		}

		if snap.Phase.Terminal() {
			fmt.Println(snap.Summary)
			return
		}
	}
}

// renderSnapshot formats one progress line from a snapshot.
func renderSnapshot(snap *run.Snapshot) string {
	switch snap.Phase {
	case run.PhasePlanning:
		return "[planning] generating plan..."
	case run.PhaseCooking:
		if cur := snap.CurrentStep(); cur >= 0 {
			return fmt.Sprintf("[cooking %d/%d] %s",
				cur+1, len(snap.Steps), snap.Steps[cur].Description)
		}
		return fmt.Sprintf("[cooking] %d/%d steps finished",
			len(snap.UsageLog), len(snap.Steps))
	default:
		return "[" + snap.Phase.String() + "]"
	}
}

// listArchivedRuns prints the run archive.
func listArchivedRuns(cfg *config.Config) error {
	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}

	store, err := history.NewStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	metas, err := store.List(20)
	if err != nil {
		return err
	}

	if len(metas) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	for _, m := range metas {
		fmt.Printf("%s  %-30s %-10s %d steps  %s\n",
			m.FinishedAt.Format("2006-01-02 15:04:05"),
			m.Recipe, m.Phase, m.Steps, m.Summary)
	}
	return nil
}
