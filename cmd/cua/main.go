// Package main provides the cua command, a headless computer-use
// agent that drives a remotely hosted browser session to complete a
// natural-language task.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/cua/pkg/agent"
	"github.com/entrhq/cua/pkg/config"
)

const version = "0.1.0"

// cliConfig holds command-line configuration.
type cliConfig struct {
	Task        string
	ConfigFile  string
	Provider    string
	Environment string
	Model       string
	SessionID   string
	ZDR         bool
	MaxCycles   int
	Timeout     time.Duration
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("cua v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, cli); err != nil {
		cancel()
		log.Printf("Execution failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags.
func parseFlags() *cliConfig {
	cli := &cliConfig{}

	flag.StringVar(&cli.Task, "task", "", "Task description (required)")
	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cli.Provider, "provider", "", "Session provider: hyperbrowser or scrapybara")
	flag.StringVar(&cli.Environment, "environment", "", "Machine flavor: web, ubuntu or windows")
	flag.StringVar(&cli.Model, "model", "", "Computer-use model name")
	flag.StringVar(&cli.SessionID, "session", "", "Resume an existing session by id")
	flag.BoolVar(&cli.ZDR, "zdr", false, "Resend full history on every model call (zero data retention)")
	flag.IntVar(&cli.MaxCycles, "max-cycles", 0, "Cap on model invocations per run (0 = no cap)")
	flag.DurationVar(&cli.Timeout, "timeout", 10*time.Minute, "Run timeout")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cua - Headless Computer-Use Agent\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cua [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Run a browsing task on Hyperbrowser\n")
		fmt.Fprintf(os.Stderr, "  cua -task \"Find the cheapest direct flight from SFO to JFK next Friday\"\n\n")
		fmt.Fprintf(os.Stderr, "  # Run with a config file against Scrapybara\n")
		fmt.Fprintf(os.Stderr, "  cua -config cua.yaml -task \"Check my order status\"\n\n")
		fmt.Fprintf(os.Stderr, "  # Resume a session\n")
		fmt.Fprintf(os.Stderr, "  cua -session sess_abc123 -task \"Continue from the cart page\"\n\n")
	}

	flag.Parse()
	return cli
}

// run builds the agent stack and drives one task to completion.
func run(ctx context.Context, cli *cliConfig) error {
	if cli.Task == "" {
		return fmt.Errorf("task is required")
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sink := agent.LiveViewSink(func(liveViewURL string) {
		fmt.Printf("Live view: %s\n", liveViewURL)
	})

	stack, err := config.Build(cfg, sink)
	if err != nil {
		return fmt.Errorf("failed to build agent: %w", err)
	}

	if cli.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cli.Timeout)
		defer cancel()
	}

	st := stack.NewRun(cli.Task)

	log.Printf("Starting run...")
	log.Printf("Task: %s", cli.Task)
	log.Printf("Provider: %s", cfg.Provider)

	if err := stack.Runner.Run(ctx, st); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if final := st.Last(); final != nil {
		fmt.Println(final.Text())
	}
	if st.Session != nil {
		log.Printf("Session id: %s", st.Session.ID)
	}
	return nil
}

// loadConfig merges the config file, CLI flags and defaults. Flags win
// over file values.
func loadConfig(cli *cliConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cli.ConfigFile != "" {
		loaded, err := config.LoadFile(cli.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.Provider != "" {
		cfg.Provider = cli.Provider
	}
	if cli.Environment != "" {
		cfg.Environment = cli.Environment
	}
	if cli.Model != "" {
		cfg.Model = cli.Model
	}
	if cli.SessionID != "" {
		cfg.SessionID = cli.SessionID
	}
	if cli.ZDR {
		cfg.ZDREnabled = true
	}
	if cli.MaxCycles > 0 {
		cfg.MaxCycles = cli.MaxCycles
	}

	return cfg, nil
}
