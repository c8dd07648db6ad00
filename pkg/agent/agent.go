package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashgraph-online/hedera-agent-go/pkg/prompt"
	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const (
	outputKey            = "output"
	intermediateStepsKey = "intermediateSteps"
)

// Executor runs a tool-calling agent over a fixed tool set.
type Executor struct {
	executor *agents.Executor
	prompt   *historyPrompt
	history  *memory.ChatMessageHistory
	logger   *zap.Logger

	// One invocation at a time; history is read and written per turn.
	mutex sync.Mutex
}

func New(config Config) (*Executor, error) {
	if config.Model == nil {
		return nil, fmt.Errorf("language model is required")
	}

	template := config.Prompt
	if len(template.Messages) == 0 {
		template = prompt.New("")
	}
	maxIterations := config.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	wrapped := newHistoryPrompt(template)
	functionsAgent := agents.NewOpenAIFunctionsAgent(config.Model, config.Tools)
	functionsAgent.Prompt = wrapped
	if config.Callbacks != nil {
		functionsAgent.CallbacksHandler = config.Callbacks
	}

	options := []agents.Option{agents.WithMaxIterations(maxIterations)}
	if config.ReturnSteps {
		options = append(options, agents.WithReturnIntermediateSteps())
	}
	if config.Callbacks != nil {
		options = append(options, agents.WithCallbacksHandler(config.Callbacks))
	}

	executor := &Executor{
		executor: agents.NewExecutor(functionsAgent, options...),
		prompt:   wrapped,
		logger:   logger,
	}
	if config.Memory {
		executor.history = memory.NewChatMessageHistory()
	}

	toolNames := make([]string, 0, len(config.Tools))
	for _, tool := range config.Tools {
		toolNames = append(toolNames, tool.Name())
	}
	logger.Debug("agent executor ready",
		zap.Strings("tools", toolNames),
		zap.Int("max_iterations", maxIterations),
		zap.Bool("memory", config.Memory),
	)
	return executor, nil
}

// Invoke answers input, calling tools as the model requests them.
func (e *Executor) Invoke(ctx context.Context, input string) (Response, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Response{}, ErrEmptyInput
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.history != nil {
		messages, err := e.history.Messages(ctx)
		if err != nil {
			return Response{}, fmt.Errorf("failed to load chat history: %w", err)
		}
		e.prompt.setMessages(messages)
	}

	e.logger.Debug("invoking agent", zap.String("input", trimmed))
	values, err := chains.Call(ctx, e.executor, map[string]any{prompt.InputKey: trimmed})
	if err != nil {
		if errors.Is(err, agents.ErrNotFinished) {
			return Response{}, fmt.Errorf("agent did not finish within %d iterations: %w", e.executor.MaxIterations, err)
		}
		return Response{}, fmt.Errorf("agent invocation failed: %w", err)
	}

	output, ok := values[outputKey].(string)
	if !ok {
		return Response{}, fmt.Errorf("agent returned no %q value", outputKey)
	}
	response := Response{
		Input:  trimmed,
		Output: output,
		Steps:  convertSteps(values[intermediateStepsKey]),
	}

	if e.history != nil {
		if err := e.history.AddUserMessage(ctx, trimmed); err != nil {
			return Response{}, fmt.Errorf("failed to record input: %w", err)
		}
		if err := e.history.AddAIMessage(ctx, output); err != nil {
			return Response{}, fmt.Errorf("failed to record output: %w", err)
		}
	}

	return response, nil
}

// Reset clears conversation memory. It is a no-op when memory is disabled.
func (e *Executor) Reset(ctx context.Context) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if e.history == nil {
		return nil
	}
	e.prompt.setMessages(nil)
	return e.history.Clear(ctx)
}

func convertSteps(value any) []Step {
	rawSteps, ok := value.([]schema.AgentStep)
	if !ok || len(rawSteps) == 0 {
		return nil
	}
	steps := make([]Step, 0, len(rawSteps))
	for _, step := range rawSteps {
		steps = append(steps, Step{
			Tool:        step.Action.Tool,
			ToolInput:   step.Action.ToolInput,
			Observation: step.Observation,
		})
	}
	return steps
}
