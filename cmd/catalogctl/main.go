package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"CatalogBot/internal/cli/commands"
	"CatalogBot/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// env + флаги; -d и -upload-dir указывают на те же БД и файлы, что у сервера
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()

	if code != commands.ExitOK {
		os.Exit(code)
	}
}

func printVersion() {
	fmt.Printf("Catalog admin CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
