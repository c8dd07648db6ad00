// Package prompt builds the chat prompt the agent runs with.
package prompt

import (
	"strings"

	"github.com/tmc/langchaingo/prompts"
)

const (
	DefaultSystemMessage = "You are a helpful assistant"

	InputKey      = "input"
	HistoryKey    = "chat_history"
	ScratchpadKey = "agent_scratchpad"
	humanTemplate = "{{." + InputKey + "}}"
	slotCount     = 4
)

// New returns a chat prompt with four messages, in order: the system
// instruction, the conversation history, the human input and the agent
// scratchpad.
func New(systemMessage string) prompts.ChatPromptTemplate {
	system := strings.TrimSpace(systemMessage)
	if system == "" {
		system = DefaultSystemMessage
	}

	messages := make([]prompts.MessageFormatter, 0, slotCount)
	messages = append(messages,
		prompts.NewSystemMessagePromptTemplate(escapeTemplate(system), nil),
		prompts.MessagesPlaceholder{VariableName: HistoryKey},
		prompts.NewHumanMessagePromptTemplate(humanTemplate, []string{InputKey}),
		prompts.MessagesPlaceholder{VariableName: ScratchpadKey},
	)
	return prompts.NewChatPromptTemplate(messages)
}

// escapeTemplate keeps braces in a configured system message from being
// read as template actions.
func escapeTemplate(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	return strings.NewReplacer("{{", `{{"{{"}}`, "}}", `{{"}}"}}`).Replace(text)
}
