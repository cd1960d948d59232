package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pf-sandbox/audio"
	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/config"
	"github.com/lixenwraith/pf-sandbox/core"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/match"
	"github.com/lixenwraith/pf-sandbox/physics"
	"github.com/lixenwraith/pf-sandbox/script"
	"github.com/lixenwraith/pf-sandbox/status"
)

var (
	configFlag    = flag.String("config", "pf-sandbox.ini", "Path to INI config, missing file uses defaults")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/pf-sandbox.log")
	playersFlag   = flag.Int("players", 0, "Number of players, overrides config")
	stageFlag     = flag.String("stage", "", "Stage name, overrides config")
	fightersFlag  = flag.String("fighters", "", "Comma separated fighter names, overrides config")
	headlessFlag  = flag.Bool("headless", false, "Run without a terminal screen, idle or replayed input only")
	maxFramesFlag = flag.Uint64("max-frames", 0, "Stop after this many frames, overrides config")
	reportFlag    = flag.String("report", "", "Write the match outcome as YAML to this path, - for stdout")
	recordFlag    = flag.String("record", "", "Record per-tick input to this msgpack file")
	replayFlag    = flag.String("replay", "", "Replay input from a msgpack recording")
	diagFlag      = flag.String("diag", "", "Write overlay diagnostics to this file instead of the screen")
	listFlag      = flag.Bool("list", false, "List builtin fighters and stages and exit")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pf-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	pkg := catalog.Default()
	if *listFlag {
		listPackage(os.Stdout, pkg)
		return nil
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	pkg.Rules = cfg.Rules(pkg.Rules)
	fighters, stage, err := cfg.Selection(pkg)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}

	metrics := status.NewRegistry()
	ruleSet, closeRules, err := buildRuleSet(cfg, metrics)
	if err != nil {
		return err
	}
	defer closeRules()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var (
		src    input.Source = input.IdleSource{Players: len(fighters)}
		keys   input.KeyReader
		diag   io.Writer
		screen *screenWriter
	)

	if *diagFlag != "" {
		f, err := os.Create(*diagFlag)
		if err != nil {
			return fmt.Errorf("diagnostics: %w", err)
		}
		defer f.Close()
		diag = f
	}

	if !*headlessFlag {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		// Restore the terminal on both normal exit and crash
		core.SetCrashCleanup(s.Fini)
		defer s.Fini()

		kb := input.NewKeyboard(s, len(fighters), nil)
		kb.OnQuit(cancel)
		kb.Start()
		src, keys = kb, kb

		screen = newScreenWriter(s, fmt.Sprintf("pf-sandbox  stage=%d players=%d  start=Enter  quit=Esc", stage, len(fighters)))
		if diag == nil {
			diag = screen
		}
	} else if diag == nil {
		diag = os.Stdout
	}

	if *replayFlag != "" {
		f, err := os.Open(*replayFlag)
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		rec, err := input.LoadRecording(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		if rec.Players != len(fighters) {
			return fmt.Errorf("replay: recording has %d players, match has %d", rec.Players, len(fighters))
		}
		src = input.NewReplay(rec)
	}

	var recorder *input.Recorder
	if *recordFlag != "" {
		recorder = input.NewRecorder(src, len(fighters))
		src = recorder
	}

	cues := audio.NewCues(cfg.AudioCues(), metrics)
	if err := cues.Start(); err != nil {
		log.Printf("[AUDIO] %v, continuing without audio", err)
	}
	defer cues.Close()

	m, err := match.New(pkg, ruleSet, fighters, stage, match.Options{
		Netplay:      !cfg.Match.LocalPlay,
		Diagnostics:  diag,
		Bindings:     &bindings,
		Cues:         cues,
		Metrics:      metrics,
		TickInterval: cfg.TickInterval(),
		MaxFrames:    cfg.Match.MaxFrames,
	})
	if err != nil {
		return err
	}

	if screen != nil {
		stopStatus := watchStatus(ctx, m, screen)
		defer stopStatus()
	}

	log.Printf("[MAIN] match start: stage=%d fighters=%v rules=%+v", stage, fighters, pkg.Rules)
	outcome, runErr := m.Run(ctx, src, keys)

	if recorder != nil {
		if err := saveRecording(*recordFlag, recorder); err != nil {
			return err
		}
	}
	if *reportFlag != "" {
		if err := writeReport(*reportFlag, outcome); err != nil {
			return err
		}
	}

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}

// applyFlags lets explicit command line values win over the config file
func applyFlags(cfg *config.Config) {
	if *playersFlag > 0 {
		cfg.Match.Players = *playersFlag
	}
	if *stageFlag != "" {
		cfg.Match.Stage = *stageFlag
	}
	if *fightersFlag != "" {
		cfg.Match.Fighters = splitNames(*fightersFlag)
	}
	if *maxFramesFlag > 0 {
		cfg.Match.MaxFrames = *maxFramesFlag
	}
}

func splitNames(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// buildRuleSet picks the Lua rule set when scripting is enabled, falling back to Go physics
func buildRuleSet(cfg *config.Config, metrics *status.Registry) (match.RuleSet, func(), error) {
	rules := physics.NewRuleSet(metrics)
	if !cfg.Script.Enabled {
		return rules, func() {}, nil
	}

	var (
		rs  *script.RuleSet
		err error
	)
	if cfg.Script.RuleScript == "" {
		rs, err = script.New(script.Builtin, cfg.Script.Params, rules, metrics)
	} else {
		rs, err = script.Load(cfg.Script.RuleScript, cfg.Script.Params, rules, metrics)
	}
	if err != nil {
		return nil, nil, err
	}
	return rs, rs.Close, nil
}

func listPackage(w io.Writer, pkg *catalog.Package) {
	fighters, stages := pkg.Names()
	fmt.Fprintf(w, "package %s\n", pkg.Name)
	fmt.Fprintln(w, "fighters:")
	for i, name := range fighters {
		fmt.Fprintf(w, "  %d  %s\n", i, name)
	}
	fmt.Fprintln(w, "stages:")
	for i, name := range stages {
		fmt.Fprintf(w, "  %d  %s\n", i, name)
	}
}

// watchStatus refreshes the screen title from published metrics
func watchStatus(ctx context.Context, m *match.Match, screen *screenWriter) func() {
	done := make(chan struct{})
	metrics := m.Metrics()
	core.Go(func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				screen.status(fmt.Sprintf("pf-sandbox  frame=%d  mode=%s  overlays=%d  start=Enter  quit=Esc",
					metrics.Ints.Get("match.frames").Load(),
					metrics.Strings.Get("match.mode").Load(),
					metrics.Ints.Get("match.overlay_outputs").Load()))
			}
		}
	})
	return func() { close(done) }
}

func saveRecording(path string, rec *input.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	defer f.Close()
	if err := rec.Save(f); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	log.Printf("[MAIN] recorded %d ticks to %s", rec.Len(), path)
	return nil
}

func writeReport(path string, out match.Outcome) error {
	if path == "-" {
		return out.WriteYAML(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer f.Close()
	return out.WriteYAML(f)
}
