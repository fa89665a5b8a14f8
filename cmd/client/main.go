package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"PolicyDesk/internal/cli/commands"
	"PolicyDesk/internal/config"
	"PolicyDesk/internal/logger"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env, cleanup, err := commands.NewEnv(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "session store: %v\n", err)
		os.Exit(1)
	}

	// dispatcher
	exitCode := commands.Dispatch(ctx, env, flag.Args())
	if err := cleanup(); err != nil {
		log.Debugw("session store close failed", "error", err)
	}
	if exitCode == 0 {
		return
	}
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("PolicyDesk CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
