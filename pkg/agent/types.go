package agent

import (
	"errors"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/tools"
	"go.uber.org/zap"
)

const DefaultMaxIterations = 5

var ErrEmptyInput = errors.New("input is required")

type Config struct {
	Model llms.Model
	Tools []tools.Tool
	// Prompt defaults to prompt.New("") when it has no messages.
	Prompt        prompts.ChatPromptTemplate
	MaxIterations int
	// Memory keeps earlier turns in the chat_history slot.
	Memory      bool
	ReturnSteps bool
	Callbacks   callbacks.Handler
	Logger      *zap.Logger
}

// Response is the executor result for one input.
type Response struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Steps  []Step `json:"steps,omitempty"`
}

// Step is one tool call made while answering.
type Step struct {
	Tool        string `json:"tool"`
	ToolInput   string `json:"tool_input"`
	Observation string `json:"observation"`
}
