package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/basedlol/ty/internal/client"
	"github.com/basedlol/ty/internal/config"
	"github.com/basedlol/ty/internal/history"
	"github.com/basedlol/ty/internal/invoke"
	"github.com/basedlol/ty/internal/log"
	"github.com/basedlol/ty/internal/relay"
	"github.com/basedlol/ty/internal/tui/repl"
)

var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) == 0 {
		fmt.Println(invoke.Usage)
		return 0
	}

	cmd := cliArgs[0]
	args := cliArgs[1:]

	switch cmd {
	case "run":
		return runRun(args)
	case "serve":
		if hasHelpFlag(args) {
			printServeHelp()
			return 0
		}
		return runServe(args)
	case "history":
		if hasHelpFlag(args) {
			printHistoryHelp()
			return 0
		}
		return runHistory(args)
	case "repl":
		if hasHelpFlag(args) {
			printReplHelp()
			return 0
		}
		return runRepl(args)
	case "version", "--version":
		return runVersion(args)
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		// Everything else is code for the remote endpoint, untouched.
		return runRun(cliArgs)
	}
}

// runRun is the default path: join the arguments, substitute `\n`, split on
// -stdin=, POST, print the trimmed response.
func runRun(args []string) int {
	if len(args) == 0 {
		fmt.Println(invoke.Usage)
		return 0
	}

	cfg, err := config.LoadOrDefault("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("run")

	req := invoke.Parse(args)
	c := client.New(cfg.Endpoint, client.WithTimeout(cfg.Client.Timeout))

	out, err := c.Run(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(out)

	if cfg.History.Enabled {
		journalRun(cfg, req, out, logger)
	}
	return 0
}

// journalRun appends the run to the opt-in history journal. Journal trouble
// never fails the run itself.
func journalRun(cfg *config.Config, req invoke.Request, out string, logger *slog.Logger) {
	ctx := context.Background()
	db, err := history.OpenSQLite(ctx, cfg.History.Path)
	if err != nil {
		logger.Warn("history disabled for this run", "path", cfg.History.Path, "error", err)
		return
	}
	defer db.Close()

	st := history.NewStore(db)
	id, err := st.Append(ctx, req, out)
	if err != nil {
		logger.Warn("failed to journal run", "error", err)
		return
	}
	log.WithRun(id).Debug("run journaled", "path", cfg.History.Path)
	if err := st.Prune(ctx, cfg.History.Keep); err != nil {
		logger.Warn("failed to prune history", "error", err)
	}
}

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	n := fs.Int("n", 20, "Number of runs to show")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	log.Setup(cfg.LogLevel)

	ctx := context.Background()
	db, err := history.OpenSQLite(ctx, cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history: %v\n", err)
		return 1
	}
	defer db.Close()

	recs, err := history.NewStore(db).Recent(ctx, *n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read history: %v\n", err)
		return 1
	}

	if *jsonOut {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render history JSON: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	if len(recs) == 0 {
		fmt.Println("history is empty")
		return 0
	}
	for _, rec := range recs {
		fmt.Printf("%s  %s  %s => %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.ID[:8],
			firstLine(rec.Code),
			firstLine(rec.Output),
		)
	}
	return 0
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	listen := fs.String("listen", "", "Listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Relay.Listen = *listen
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("relay")
	logger.Info("ty relay starting", "version", version, "listen", cfg.Relay.Listen, "endpoint", cfg.Endpoint)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.Endpoint, client.WithTimeout(cfg.Client.Timeout))
	server := relay.New(relay.Config{Listen: cfg.Relay.Listen}, c, logger)

	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Relay failed: %v\n", err)
		return 1
	}
	return 0
}

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	log.Setup(cfg.LogLevel)

	c := client.New(cfg.Endpoint, client.WithTimeout(cfg.Client.Timeout))
	m := repl.New(c)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return 1
	}
	return 0
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output version metadata as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	info := versionInfo{Version: version, Commit: gitCommit, BuildTime: buildDate}

	if *jsonOut {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render version JSON: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("ty %s\n", info.Version)
	fmt.Printf("commit: %s\n", info.Commit)
	fmt.Printf("built_at: %s\n", info.BuildTime)
	return 0
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Print(`ty - submit code to the remote run endpoint

Usage:
  ty <code> [-stdin=<input>]
  ty <command> [flags]

The default invocation joins all arguments into one snippet, turns every
literal \n into a newline, splits the result on the first -stdin= marker,
and POSTs the code and input to ` + config.DefaultEndpoint + `.
The trimmed response body is printed to stdout.

Commands:
  run       Explicit form of the default invocation
  history   Show journaled runs (requires history.enabled in the config)
  serve     Run a local forwarding endpoint (POST /run.ty)
  repl      Interactive submit loop
  version   Show version information
  help      Show this help message

Configuration is read from ~/.config/ty/config.yaml when present; without it
the built-in defaults apply and nothing is persisted.
`)
}

func printServeHelp() {
	fmt.Println("Usage: ty serve [--listen ADDR] [--config PATH]")
	fmt.Println("Expose POST /run.ty locally and forward submissions to the remote endpoint.")
}

func printHistoryHelp() {
	fmt.Println("Usage: ty history [-n N] [--json] [--config PATH]")
	fmt.Println("Show the most recent journaled runs, newest first.")
}

func printReplHelp() {
	fmt.Println("Usage: ty repl [--config PATH]")
	fmt.Println("Interactive loop; each line is submitted as an independent run.")
}
