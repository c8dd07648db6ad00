package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashgraph-online/hedera-agent-go/pkg/ledger"
	"github.com/hashgraph-online/hedera-agent-go/pkg/mirror"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/tools"
	"go.uber.org/zap"
)

var ErrUnknownTool = errors.New("unknown tool")

// Ledger is the subset of *ledger.Client the tools call.
type Ledger interface {
	OperatorAccountID() string
	GetHbarBalance(ctx context.Context, accountID string) (ledger.Balance, error)
	CreateAccount(ctx context.Context, options ledger.AccountCreateOptions) (ledger.AccountCreateResult, error)
	TransferHbar(ctx context.Context, options ledger.TransferOptions) (ledger.TransferResult, error)
	CreateTopic(ctx context.Context, options ledger.TopicCreateOptions) (ledger.TopicCreateResult, error)
	SubmitTopicMessage(ctx context.Context, topicID string, message string) (ledger.TopicMessageResult, error)
}

// Mirror is the subset of *mirror.Client the query tools call.
type Mirror interface {
	GetAccount(ctx context.Context, accountID string) (mirror.AccountInfo, error)
	GetTopicInfo(ctx context.Context, topicID string) (mirror.TopicInfo, error)
	GetTopicMessages(ctx context.Context, topicID string, options mirror.MessageQueryOptions) ([]mirror.TopicMessage, error)
	GetTransaction(ctx context.Context, transactionID string) (*mirror.Transaction, error)
}

// Configuration selects tools by name. An empty list loads every tool.
type Configuration struct {
	Tools []string `yaml:"tools"`
}

type Options struct {
	Ledger        Ledger
	Mirror        Mirror
	Configuration Configuration
	Callbacks     callbacks.Handler
	Logger        *zap.Logger
}

// Toolkit exposes Hedera operations as langchaingo tools.
type Toolkit struct {
	available []*Tool
	selected  []*Tool
	logger    *zap.Logger
}

var _ tools.Tool = (*Tool)(nil)

func New(options Options) (*Toolkit, error) {
	if options.Ledger == nil {
		return nil, fmt.Errorf("ledger client is required")
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	available := make([]*Tool, 0, len(definitions))
	for _, definition := range definitions {
		if definition.needsMirror && options.Mirror == nil {
			logger.Debug("mirror node not configured; tool unavailable", zap.String("tool", definition.name))
			continue
		}
		available = append(available, &Tool{
			definition: definition,
			ledger:     options.Ledger,
			mirror:     options.Mirror,
			Callbacks:  options.Callbacks,
			logger:     logger.With(zap.String("tool", definition.name)),
		})
	}

	kit := &Toolkit{available: available, logger: logger}
	kit.selected = kit.selectTools(options.Configuration.Tools)
	return kit, nil
}

func (t *Toolkit) selectTools(allowList []string) []*Tool {
	if len(allowList) == 0 {
		return t.available
	}

	byName := make(map[string]*Tool, len(t.available))
	for _, tool := range t.available {
		byName[tool.Name()] = tool
	}

	selected := make([]*Tool, 0, len(allowList))
	seen := make(map[string]struct{}, len(allowList))
	for _, raw := range allowList {
		name := strings.TrimSpace(raw)
		if _, duplicate := seen[name]; duplicate {
			continue
		}
		seen[name] = struct{}{}

		tool, ok := byName[name]
		if !ok {
			t.logger.Warn("ignoring unavailable tool", zap.String("tool", name))
			continue
		}
		selected = append(selected, tool)
	}
	return selected
}

// GetTools returns the configured tools in a form the agent accepts.
func (t *Toolkit) GetTools() []tools.Tool {
	result := make([]tools.Tool, 0, len(t.selected))
	for _, tool := range t.selected {
		result = append(result, tool)
	}
	return result
}

// AvailableToolNames lists every tool this toolkit could load.
func (t *Toolkit) AvailableToolNames() []string {
	names := make([]string, 0, len(t.available))
	for _, tool := range t.available {
		names = append(names, tool.Name())
	}
	return names
}

// Tool looks up a selected tool by name.
func (t *Toolkit) Tool(name string) (*Tool, error) {
	for _, tool := range t.selected {
		if tool.Name() == name {
			return tool, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

// AllToolNames lists every tool name known to the package, whether or not a
// mirror node is configured.
func AllToolNames() []string {
	names := make([]string, 0, len(definitions))
	for _, definition := range definitions {
		names = append(names, definition.name)
	}
	return names
}
