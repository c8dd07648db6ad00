package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/hashgraph-online/hedera-agent-go/pkg/config"
	"github.com/hashgraph-online/hedera-agent-go/pkg/logging"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("hedera-agent", flag.ContinueOnError)
	flags.SetOutput(stderr)
	query := flags.String("query", "", "natural-language request (default \""+config.DefaultQuery+"\")")
	configPath := flags.String("config", "", "path to a YAML config file")
	interactive := flags.Bool("interactive", false, "read requests line by line from stdin")
	showVersion := flags.Bool("version", false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback, _ := logging.New(logging.Config{})
		fallback.Error("failed to load configuration", zap.Error(err))
		_ = fallback.Sync()
		return 1
	}
	if *query != "" {
		cfg.Agent.Query = *query
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	defer func() { _ = logger.Sync() }()

	redacted := cfg.Redacted()
	logger.Info("starting hedera agent",
		zap.String("version", version),
		zap.String("network", cfg.Operator.Network),
		zap.String("account_id", cfg.Operator.AccountID),
		zap.String("private_key", redacted.Operator.PrivateKey),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
	)

	session, err := newSession(cfg, logger, nil)
	if err != nil {
		logger.Error("failed to start agent", zap.Error(err))
		return 1
	}
	defer session.Close()

	if *interactive {
		err = session.Loop(ctx, stdin, stdout)
	} else {
		err = session.Ask(ctx, cfg.Agent.Query, stdout)
	}
	if err != nil {
		logger.Error("agent run failed", zap.Error(err))
		return 1
	}
	return 0
}
