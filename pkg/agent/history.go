package agent

import (
	"maps"
	"slices"
	"sync"

	"github.com/hashgraph-online/hedera-agent-go/pkg/prompt"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// historyPrompt fills the chat_history slot itself because the executor only
// forwards string inputs to the agent.
type historyPrompt struct {
	template prompts.ChatPromptTemplate

	mutex    sync.RWMutex
	messages []llms.ChatMessage
}

var _ prompts.FormatPrompter = (*historyPrompt)(nil)

func newHistoryPrompt(template prompts.ChatPromptTemplate) *historyPrompt {
	return &historyPrompt{template: template}
}

func (p *historyPrompt) setMessages(messages []llms.ChatMessage) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.messages = slices.Clone(messages)
}

func (p *historyPrompt) FormatPrompt(values map[string]any) (llms.PromptValue, error) {
	full := make(map[string]any, len(values)+1)
	maps.Copy(full, values)

	p.mutex.RLock()
	history := slices.Clone(p.messages)
	p.mutex.RUnlock()
	if history == nil {
		history = []llms.ChatMessage{}
	}
	full[prompt.HistoryKey] = history

	return p.template.FormatPrompt(full)
}

func (p *historyPrompt) GetInputVariables() []string {
	variables := p.template.GetInputVariables()
	return slices.DeleteFunc(slices.Clone(variables), func(name string) bool {
		return name == prompt.HistoryKey
	})
}
