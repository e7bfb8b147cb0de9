package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ametelin/localtodo/internal/adapter"
	"github.com/ametelin/localtodo/internal/command"
	"github.com/ametelin/localtodo/internal/config"
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/mcp"
	"github.com/ametelin/localtodo/internal/service"
	"github.com/ametelin/localtodo/internal/store"
	"github.com/ametelin/localtodo/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	mode, args := splitMode(os.Args[1:])

	// stdout belongs to the MCP protocol and to exec's JSON envelope,
	// so those modes log to a file instead.
	var log *logger.Logger
	if mode == "mcp" || mode == "exec" {
		log = logger.NewFileLogger("localtodo-client")
	} else {
		printBuildInfo()
		log = logger.NewLogger("localtodo-client")
	}

	cfg, err := config.GetClientConfig(flagArgs(args))
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	storages, err := store.NewClientStorages(cfg.Local, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	remote := adapter.NewHTTPRemoteAPI(cfg.Remote)
	services := service.NewClientServices(storages.Local, remote, log)

	switch mode {
	case "tui":
		runTUI(cfg, services, log)
	case "exec":
		runExec(args, services, log)
	case "mcp":
		runMCP(cfg, services, log)
	case "sync":
		runSync(services, log)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want tui, exec, mcp, or sync)\n", mode)
		os.Exit(2)
	}
}

// splitMode peels the leading subcommand off the argument list. A missing or
// flag-like first argument means the interactive TUI.
func splitMode(args []string) (string, []string) {
	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		return "tui", args
	}
	return args[0], args[1:]
}

// flagArgs strips positional arguments so the config layer only sees flags.
func flagArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if len(a) > 0 && a[0] == '-' {
			out = append(out, a)
		}
	}
	return out
}

func runTUI(cfg *config.ClientConfig, services *service.ClientServices, log *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	services.SyncJob.Start(ctx, cfg.Workers.SyncInterval)
	defer services.SyncJob.Stop()

	ui := tui.New(services, log)
	if err := ui.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("tui run error")
	}
}

func runExec(args []string, services *service.ClientServices, log *logger.Logger) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: localtodo exec <command> [json-input]")
		os.Exit(2)
	}

	input := command.Input{}
	if len(args) > 1 {
		if err := json.Unmarshal([]byte(args[1]), &input); err != nil {
			fmt.Fprintf(os.Stderr, "invalid json input: %v\n", err)
			os.Exit(2)
		}
	}

	ctx := context.Background()
	result := services.Registry.Execute(ctx, args[0], input)

	// Best-effort push so durable backends do not sit on pending operations.
	if err := services.Reconciler.FullSync(ctx); err != nil {
		log.Warn().Err(err).Msg("sync after exec failed, changes stay pending")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("marshal command result")
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}

func runMCP(cfg *config.ClientConfig, services *service.ClientServices, log *logger.Logger) {
	s := mcp.NewServer(services.Registry, cfg.Version, log)
	if err := mcp.ServeStdio(s); err != nil {
		log.Fatal().Err(err).Msg("mcp server error")
	}
}

func runSync(services *service.ClientServices, log *logger.Logger) {
	if err := services.Reconciler.FullSync(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("full sync failed")
	}
	log.Info().Msg("sync complete")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
