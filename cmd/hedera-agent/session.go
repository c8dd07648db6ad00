package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hashgraph-online/hedera-agent-go/pkg/agent"
	"github.com/hashgraph-online/hedera-agent-go/pkg/config"
	"github.com/hashgraph-online/hedera-agent-go/pkg/ledger"
	"github.com/hashgraph-online/hedera-agent-go/pkg/llm"
	"github.com/hashgraph-online/hedera-agent-go/pkg/mirror"
	"github.com/hashgraph-online/hedera-agent-go/pkg/prompt"
	"github.com/hashgraph-online/hedera-agent-go/pkg/toolkit"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

type session struct {
	cfg      config.Config
	ledger   *ledger.Client
	executor *agent.Executor
	logger   *zap.Logger
}

// newSession builds the model, clients, toolkit and executor. A nil model is
// built from cfg.LLM.
func newSession(cfg config.Config, logger *zap.Logger, model llms.Model) (*session, error) {
	if model == nil {
		built, err := llm.New(cfg.LLM)
		if err != nil {
			return nil, err
		}
		model = built
	}

	ledgerClient, err := ledger.NewClient(ledger.Config{
		AccountID:  cfg.Operator.AccountID,
		PrivateKey: cfg.Operator.PrivateKey,
		Network:    cfg.Operator.Network,
		KeyFormat:  cfg.Operator.KeyFormat,
	})
	if err != nil {
		return nil, err
	}

	var mirrorClient toolkit.Mirror
	if !cfg.Mirror.Disabled {
		client, err := mirror.NewClient(mirror.Config{
			Network: cfg.Operator.Network,
			BaseURL: cfg.Mirror.BaseURL,
			APIKey:  cfg.Mirror.APIKey,
		})
		if err != nil {
			_ = ledgerClient.Close()
			return nil, err
		}
		mirrorClient = client
	}

	handler := agent.NewLogHandler(logger)
	kit, err := toolkit.New(toolkit.Options{
		Ledger:        ledgerClient,
		Mirror:        mirrorClient,
		Configuration: cfg.Toolkit,
		Callbacks:     handler,
		Logger:        logger,
	})
	if err != nil {
		_ = ledgerClient.Close()
		return nil, err
	}

	executor, err := agent.New(agent.Config{
		Model:         model,
		Tools:         kit.GetTools(),
		Prompt:        prompt.New(cfg.Agent.SystemPrompt),
		MaxIterations: cfg.Agent.MaxIterations,
		Memory:        cfg.Agent.Memory,
		ReturnSteps:   true,
		Callbacks:     handler,
		Logger:        logger,
	})
	if err != nil {
		_ = ledgerClient.Close()
		return nil, err
	}

	logger.Debug("session ready", zap.Strings("tools", kit.AvailableToolNames()))
	return &session{cfg: cfg, ledger: ledgerClient, executor: executor, logger: logger}, nil
}

func (s *session) Close() {
	if err := s.ledger.Close(); err != nil {
		s.logger.Warn("failed to close hedera client", zap.Error(err))
	}
}

// Ask runs one request and writes the response as indented JSON.
func (s *session) Ask(ctx context.Context, query string, out io.Writer) error {
	if s.cfg.Agent.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Agent.Timeout)
		defer cancel()
	}

	response, err := s.executor.Invoke(ctx, query)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

// Loop answers one request per input line until EOF, "exit" or "quit".
// A failed request is logged and the loop continues. Cancelling ctx stops the
// loop even while it is waiting for input.
func (s *session) Loop(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	// The reader goroutine stays blocked in Scan after cancellation until
	// the input is closed; for stdin that happens at process exit.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-scanErr
			}
			line = strings.TrimSpace(next)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := s.Ask(ctx, line, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("request failed", zap.String("input", line), zap.Error(err))
		}
	}
}
