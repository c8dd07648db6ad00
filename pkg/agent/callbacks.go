package agent

import (
	"context"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// LogHandler writes agent and tool activity to a zap logger.
type LogHandler struct {
	callbacks.SimpleHandler
	logger *zap.Logger
}

var _ callbacks.Handler = (*LogHandler)(nil)

func NewLogHandler(logger *zap.Logger) *LogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogHandler{logger: logger}
}

func (h *LogHandler) HandleAgentAction(_ context.Context, action schema.AgentAction) {
	h.logger.Info("agent selected tool",
		zap.String("tool", action.Tool),
		zap.String("tool_input", action.ToolInput),
	)
}

func (h *LogHandler) HandleAgentFinish(_ context.Context, finish schema.AgentFinish) {
	h.logger.Debug("agent finished", zap.Int("return_values", len(finish.ReturnValues)))
}

func (h *LogHandler) HandleToolStart(_ context.Context, input string) {
	h.logger.Debug("tool started", zap.String("input", input))
}

func (h *LogHandler) HandleToolEnd(_ context.Context, output string) {
	h.logger.Debug("tool finished", zap.Int("output_bytes", len(output)))
}

func (h *LogHandler) HandleToolError(_ context.Context, err error) {
	h.logger.Warn("tool failed", zap.Error(err))
}

func (h *LogHandler) HandleLLMError(_ context.Context, err error) {
	h.logger.Error("language model call failed", zap.Error(err))
}

func (h *LogHandler) HandleChainError(_ context.Context, err error) {
	h.logger.Error("agent run failed", zap.Error(err))
}
