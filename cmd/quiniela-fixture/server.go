package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/quiniela/internal/fixtureapi"
)

// runServer serves the fixture until interrupted.
func runServer(cfg fixtureConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	fx, source, err := loadFixture(cfg.FixturePath)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := fixtureapi.NewServer(cfg.Addr, fx)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start fixture server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	printStartupBanner(srv.Addr(), source, fx.Paths())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-sigCh:
			fmt.Println("\nShutting down gracefully...")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Printf("fixture: errgroup exited with error: %v", err)
		return err
	}
	return nil
}

func loadFixture(path string) (*fixtureapi.Fixture, string, error) {
	if path == "" {
		fx, err := fixtureapi.Default()
		return fx, "embedded", err
	}
	fx, err := fixtureapi.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading fixture %s: %w", path, err)
	}
	return fx, shortenPath(path), nil
}

func printStartupBanner(addr, source string, paths []string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, cyan.Bold(true).Render("    Quiniela fixture API"))
	lines = append(lines, "    "+dim.Render("v"+version))
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Serving"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Listen         %s", check, cyan.Render("http://"+addr+fixtureapi.PathPrefix)))
	lines = append(lines, fmt.Sprintf("    %s  Fixture        %s", check, dim.Render(source)))
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Endpoints"))
	lines = append(lines, "")
	for _, p := range paths {
		lines = append(lines, "    "+dim.Render("GET ")+fixtureapi.PathPrefix+p)
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

