// Copyright 2025 The anafind Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the anafind command: list every dictionary word that
can be spelled from a subset of the letters you give it.

Each dictionary word is reduced to its letter counts (a signature) and words
sharing a signature are grouped in a Patricia trie. A query reduces the input
letters the same way and keeps every group whose counts fit inside the input's,
then applies the optional length and positional filters.

# Usage

Print words spelled from "elephant", one per line:

	anafind elephant

Only 5 letter words matching a positional pattern ('.' matches any letter):

	anafind -l 5 -p pl... elephant

Use a different word list, which may be gzip, zstd or lz4 compressed:

	anafind -words words.txt.zst elephant

# Modes

Besides one-shot queries anafind can run as an interactive prompt (-c), as a
MessagePack server over stdin/stdout for editor integrations (-ipc), or as an
HTTP server with Prometheus metrics (-serve, or -http :9090 to pick the
address).

	{"id": "1", "p": "elephant", "l": 5}
	{"id": "1", "w": ["plane"], "c": 1, "t": 412}

# Configuration

Defaults are read from a TOML file, created on first run under the user's
config directory, or from the path given with -config:

	[dict]
	path = "/usr/share/dict/words"

	[query]
	min_length = 3

	[server]
	max_pattern = 64
	max_results = 0

	[http]
	addr = ":8080"

Flags override the file. Dictionary errors such as a missing file or a line
that is not valid UTF-8 stop the program before any query runs.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/anafind/internal/cli"
	"github.com/bastiangx/anafind/internal/utils"
	"github.com/bastiangx/anafind/pkg/api"
	"github.com/bastiangx/anafind/pkg/config"
	"github.com/bastiangx/anafind/pkg/dictionary"
	"github.com/bastiangx/anafind/pkg/index"
	"github.com/bastiangx/anafind/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	Version = "0.3.0"
	AppName = "anafind"
	gh      = "https://github.com/bastiangx/anafind"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires flags and config into the packages that do the work.
func main() {
	var (
		length    int
		minLength int
		match     string
	)

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive prompt")
	ipcMode := flag.Bool("ipc", false, "Serve MessagePack requests over stdin/stdout")
	httpAddr := flag.String("http", "", "Serve HTTP on this address, e.g. :8080")
	serveMode := flag.Bool("serve", false, "Serve HTTP on the address from config")
	wordsPath := flag.String("words", "", "Word list to load (default from config)")
	configPath := flag.String("config", "", "Path to a custom config.toml")
	flag.IntVar(&length, "l", 0, "Only words of exactly this many letters (0 = any)")
	flag.IntVar(&length, "length", 0, "Same as -l")
	flag.IntVar(&minLength, "m", -1, "Minimum word length (default from config)")
	flag.IntVar(&minLength, "min-length", -1, "Same as -m")
	flag.StringVar(&match, "p", "", "Positional pattern, '.' matches any letter")
	flag.StringVar(&match, "match", "", "Same as -p")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <letters>\n\n", AppName)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetOutput(os.Stderr)

	pattern := flag.Arg(0)
	oneShot := !*cliMode && !*ipcMode && !*serveMode && *httpAddr == ""
	if oneShot && pattern == "" {
		flag.Usage()
		os.Exit(2)
	}

	appConfig, activePath := config.LoadConfigWithPriority(*configPath)
	log.Debugf("Using config: %s", config.ActivePath(activePath))

	if minLength < 0 {
		minLength = appConfig.Query.MinLength
	}
	if length < 0 {
		log.Fatalf("Length must be >= 0, got %d", length)
	}
	if match != "" && !utils.IsValidMatch(match) {
		log.Fatalf("Positional pattern may only contain letters and '.', got '%s'", match)
	}
	appConfig.Query.MinLength = minLength

	path := *wordsPath
	if path == "" {
		path = utils.ResolveWordList(appConfig.Dict.Path)
	}
	idx, err := dictionary.Load(path)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}

	switch {
	case *cliMode:
		sigHandler()
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "length", length, "min", minLength, "match", match)

		inputHandler := cli.NewInputHandler(idx, length, minLength, appConfig.Server.MaxPattern, match)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *ipcMode:
		sigHandler()
		showStartupInfo(path, idx)
		srv := server.NewServer(idx, appConfig)
		if err := srv.Start(); err != nil {
			log.Fatalf("IPC server stopped: %v", err)
		}

	case *serveMode || *httpAddr != "":
		addr := *httpAddr
		if addr == "" {
			addr = appConfig.HTTP.Addr
		}
		runHTTP(addr, path, idx, appConfig)

	default:
		words := idx.Query(index.Query{
			Pattern:   pattern,
			Length:    length,
			MinLength: minLength,
			Match:     match,
		})
		for _, w := range words {
			fmt.Println(w)
		}
	}
}

func runHTTP(addr, path string, idx *index.Index, cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	handler := api.NewHandler(idx, cfg, reg)

	showStartupInfo(path, idx)
	if err := api.ListenAndServe(ctx, addr, api.NewRouter(handler, reg)); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ anafind ] Finds every word hiding in your letters")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the loaded dictionary.
func showStartupInfo(path string, idx *index.Index) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := idx.Stats()
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s )", path)
	log.Infof("words: %d, signatures: %d", stats.Words, stats.Signatures)
	log.Infof("started: %s", time.Now().Format(time.TimeOnly))
	log.Info("status: ready")
}
