// Command axiomd is the compositor daemon entry point: it loads
// config, builds the window manager core, and starts the event loop.
// Flag parsing follows rsc.io/getopt's short/long-alias convention
// rather than the bare flag package, matching the rest of this
// module's preference for an ecosystem library over a hand-rolled
// equivalent wherever the teacher/pack corpus shows one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"rsc.io/getopt"

	"github.com/GeneticxCln/Axiom-sub000/config"
	"github.com/GeneticxCln/Axiom-sub000/internal/logx"
	"github.com/GeneticxCln/Axiom-sub000/internal/server"
)

// focusStackCapacity is the focus-history depth: windows past it fall
// off the tail of the recency ordering (and out of Alt-Tab reach).
const focusStackCapacity = 10

var (
	nested     = flag.Bool("nested", false, "run windowed, nested inside an existing desktop session")
	configPath = flag.String("config", "", "path to the TOML config file (default: $XDG_CONFIG_HOME/axiom/axiom.toml)")
	logLevel   = flag.String("log-level", "info", "trace, debug, info, warn, or error")
)

func main() {
	getopt.Alias("n", "nested")
	getopt.Alias("c", "config")
	getopt.Parse()

	log := logx.New("axiomd")
	if err := applyLogLevel(log, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "axiomd:", err)
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		path = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Errorf("loading config: %v", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, log, focusStackCapacity)
	if err != nil {
		log.Errorf("starting server: %v", err)
		os.Exit(1)
	}
	srv.Manager.SpawnFunc = newSpawner(os.Getenv("WAYLAND_DISPLAY"))

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		log.Infof("received termination signal, shutting down")
		cancel()
	}()

	src, err := newBackendEventSource(*nested)
	if err != nil {
		log.Errorf("starting backend: %v", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx, src); err != nil {
		log.Errorf("event loop exited: %v", err)
		os.Exit(1)
	}
}

// defaultConfigPath mirrors original_source's config-path resolution
// order: $XDG_CONFIG_HOME, falling back to $HOME/.config.
func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "axiom", "axiom.toml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "axiom", "axiom.toml")
	}
	return ""
}

func applyLogLevel(log *logx.Logger, name string) error {
	switch name {
	case "trace":
		log.SetLevel(logx.LevelTrace)
	case "debug":
		log.SetLevel(logx.LevelDebug)
	case "info":
		log.SetLevel(logx.LevelInfo)
	case "warn":
		log.SetLevel(logx.LevelWarn)
	case "error":
		log.SetLevel(logx.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", name)
	}
	return nil
}
