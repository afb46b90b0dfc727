package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tinytelemetry/quiniela/internal/apiclient"
	"github.com/tinytelemetry/quiniela/internal/httpserver"
	"github.com/tinytelemetry/quiniela/internal/refresh"
	"github.com/tinytelemetry/quiniela/internal/reveal"
	"github.com/tinytelemetry/quiniela/internal/tui"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var apiBase string
	var once bool
	var width int
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/quiniela/config.yml)")
	flag.StringVar(&apiBase, "api", "", "override the API base URL")
	flag.BoolVar(&once, "once", false, "fetch every region once, print it and exit")
	flag.IntVar(&width, "width", 100, "render width for -once")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Quiniela - Results Dashboard\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	if apiBase != "" {
		os.Setenv("QUINIELA_API_BASE", apiBase)
	}
	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if once {
		err = runOnce(cfg, width)
	} else {
		err = runTUI(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := refresh.NewMetrics(reg)
	board := refresh.NewStatusBoard()

	watcher := reveal.NewWatcher(reveal.DefaultThreshold)
	animator := reveal.NewAnimator(reveal.Config{
		ReduceMotion: cfg.ReduceMotion,
		Step:         cfg.RevealStep,
		Max:          cfg.RevealMax,
	}, watcher)

	orch := refresh.NewOrchestrator(
		apiclient.New(cfg.APIBase),
		animator,
		refresh.NewScheduler(cfg.CurrentInterval, cfg.FullInterval),
		refresh.WithMetrics(metrics),
		refresh.WithStatusBoard(board),
	)
	defer orch.Shutdown()

	if cfg.DiagnosticsEnabled {
		diag := httpserver.NewServer(cfg.DiagnosticsAddr, board, reg)
		if err := diag.Start(); err != nil {
			log.Printf("Warning: failed to start diagnostics server: %v", err)
		} else {
			log.Printf("diagnostics listening on %s", diag.Addr())
			defer diag.Stop()
		}
	}

	log.Printf("quiniela %s starting against %s", version, cfg.APIBase)

	dashboard := tui.NewDashboardModel(orch, watcher, tui.Options{
		APIBase:            cfg.APIBase,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	app := tui.NewApp(dashboard, tui.NewHelpPage(settings(cfg)))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal (use -once for plain output)")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// runOnce prints a single snapshot of every region.
func runOnce(cfg cliConfig, width int) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := refresh.Snapshot(ctx, apiclient.New(cfg.APIBase), width, nil)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func settings(cfg cliConfig) []tui.Setting {
	configFile := "default (no file)"
	if cfg.ConfigPath != "" {
		configFile = cfg.ConfigPath
	}
	diagnostics := "disabled"
	if cfg.DiagnosticsEnabled {
		diagnostics = cfg.DiagnosticsAddr
	}
	return []tui.Setting{
		{Name: "api-base", Value: cfg.APIBase},
		{Name: "current-interval", Value: cfg.CurrentInterval.String()},
		{Name: "full-interval", Value: cfg.FullInterval.String()},
		{Name: "reduce-motion", Value: fmt.Sprintf("%t", cfg.ReduceMotion)},
		{Name: "diagnostics", Value: diagnostics},
		{Name: "config", Value: configFile},
		{Name: "version", Value: version},
	}
}
