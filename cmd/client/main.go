package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/jobtracker/internal/client/api"
	"github.com/iudanet/jobtracker/internal/client/auth"
	"github.com/iudanet/jobtracker/internal/client/cli"
	"github.com/iudanet/jobtracker/internal/client/iocli"
	"github.com/iudanet/jobtracker/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8000", "Server URL")
	dbPath := flag.String("db", "jobtracker-client.db", "Path to local session database")
	password := flag.String("password", "", "Account password (not recommended)")
	passwordFile := flag.String("password-file", "", "Path to file containing account password")

	flag.Parse()

	stdio := iocli.NewStdio()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		return 0
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	session := auth.NewService(apiClient, boltStorage, *serverURL)

	c := cli.New(apiClient, session, stdio, cli.Passwords{
		FromFile: *passwordFile,
		FromArgs: *password,
	})

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("Job Tracker Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
