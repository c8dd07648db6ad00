package toolkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/callbacks"
	"go.uber.org/zap"
)

type handlerFunc func(ctx context.Context, t *Tool, input string) (any, error)

type definition struct {
	name        string
	description string
	needsMirror bool
	handler     handlerFunc
}

// Tool is a single Hedera operation callable by an agent.
type Tool struct {
	definition definition
	ledger     Ledger
	mirror     Mirror
	logger     *zap.Logger
	Callbacks  callbacks.Handler
}

func (t *Tool) Name() string {
	return t.definition.name
}

func (t *Tool) Description() string {
	return t.definition.description
}

// Call runs the operation. Failures are reported back to the model as text
// so it can correct its input; only encoding problems are returned as errors.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	if t.Callbacks != nil {
		t.Callbacks.HandleToolStart(ctx, input)
	}
	t.logger.Debug("tool call", zap.String("input", input))

	result, err := t.definition.handler(ctx, t, input)
	if err != nil {
		if t.Callbacks != nil {
			t.Callbacks.HandleToolError(ctx, err)
		}
		t.logger.Warn("tool call failed", zap.Error(err))
		return fmt.Sprintf("Failed to run %s: %v", t.Name(), err), nil
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s result to JSON: %w", t.Name(), err)
	}
	output := string(jsonData)

	if t.Callbacks != nil {
		t.Callbacks.HandleToolEnd(ctx, output)
	}
	return output, nil
}
