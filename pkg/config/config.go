package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashgraph-online/hedera-agent-go/pkg/agent"
	"github.com/hashgraph-online/hedera-agent-go/pkg/llm"
	"github.com/hashgraph-online/hedera-agent-go/pkg/logging"
	"github.com/hashgraph-online/hedera-agent-go/pkg/shared"
	"github.com/hashgraph-online/hedera-agent-go/pkg/toolkit"
	"gopkg.in/yaml.v3"
)

const DefaultQuery = "what's my balance?"

var ErrMissingCredentials = shared.ErrMissingCredentials

type Config struct {
	Operator OperatorConfig        `yaml:"operator"`
	LLM      llm.Config            `yaml:"llm"`
	Agent    AgentConfig           `yaml:"agent"`
	Toolkit  toolkit.Configuration `yaml:"toolkit"`
	Mirror   MirrorConfig          `yaml:"mirror"`
	Logging  logging.Config        `yaml:"logging"`
}

type OperatorConfig struct {
	AccountID  string `yaml:"account_id"`
	PrivateKey string `yaml:"private_key"`
	Network    string `yaml:"network"`
	// KeyFormat is "der" (default) or "auto".
	KeyFormat string `yaml:"key_format"`
}

type AgentConfig struct {
	SystemPrompt  string `yaml:"system_prompt"`
	MaxIterations int    `yaml:"max_iterations"`
	// Timeout bounds one invocation. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
	Memory  bool          `yaml:"memory"`
	Query   string        `yaml:"query"`
}

type MirrorConfig struct {
	// Disabled drops the mirror-backed tools.
	Disabled bool   `yaml:"disabled"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
}

// Load reads the optional YAML file at path, overlays the environment
// (including the nearest .env file) and validates the result.
func Load(path string) (Config, error) {
	config := Config{}
	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, &config); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	shared.LoadDotEnv()
	if err := config.applyEnv(); err != nil {
		return Config{}, err
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if network := shared.FirstNonEmptyEnv("HEDERA_NETWORK", "NETWORK"); network != "" {
		c.Operator.Network = network
	}
	network := c.Operator.Network
	if strings.TrimSpace(network) == "" {
		network = shared.NetworkTestnet
	}
	accountID, privateKey := shared.OperatorCredentialsFromEnv(network)
	if accountID != "" {
		c.Operator.AccountID = accountID
	}
	if privateKey != "" {
		c.Operator.PrivateKey = privateKey
	}

	setString(&c.Operator.KeyFormat, "HEDERA_KEY_FORMAT")
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Agent.SystemPrompt, "AGENT_SYSTEM_PROMPT")
	setString(&c.Mirror.BaseURL, "MIRROR_BASE_URL")
	setString(&c.Mirror.APIKey, "MIRROR_API_KEY")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	setString(&c.Logging.File, "LOG_FILE")

	if raw := shared.FirstNonEmptyEnv("HEDERA_AGENT_TOOLS"); raw != "" {
		c.Toolkit.Tools = splitList(raw)
	}
	if raw := shared.FirstNonEmptyEnv("AGENT_MAX_ITERATIONS"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid AGENT_MAX_ITERATIONS %q: %w", raw, err)
		}
		c.Agent.MaxIterations = value
	}
	if raw := shared.FirstNonEmptyEnv("AGENT_TIMEOUT"); raw != "" {
		value, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid AGENT_TIMEOUT %q: %w", raw, err)
		}
		c.Agent.Timeout = value
	}
	if raw := shared.FirstNonEmptyEnv("AGENT_MEMORY"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid AGENT_MEMORY %q: %w", raw, err)
		}
		c.Agent.Memory = value
	}
	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Operator.Network) == "" {
		c.Operator.Network = shared.NetworkTestnet
	}
	if strings.TrimSpace(c.Operator.KeyFormat) == "" {
		c.Operator.KeyFormat = shared.KeyFormatDER
	}
	if c.Agent.MaxIterations <= 0 {
		c.Agent.MaxIterations = agent.DefaultMaxIterations
	}
	if strings.TrimSpace(c.Agent.Query) == "" {
		c.Agent.Query = DefaultQuery
	}
	c.LLM.Model = c.LLM.ModelName()
}

// Validate checks everything that can be checked without a network call.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Operator.AccountID) == "" {
		return fmt.Errorf("%w: ACCOUNT_ID is required", ErrMissingCredentials)
	}
	if strings.TrimSpace(c.Operator.PrivateKey) == "" {
		return fmt.Errorf("%w: PRIVATE_KEY is required", ErrMissingCredentials)
	}
	if _, err := shared.NormalizeNetwork(c.Operator.Network); err != nil {
		return err
	}
	if _, err := shared.ParsePrivateKeyWithFormat(c.Operator.PrivateKey, c.Operator.KeyFormat); err != nil {
		return fmt.Errorf("invalid operator private key: %w", err)
	}
	if _, err := llm.NormalizeProvider(c.LLM.Provider); err != nil {
		return err
	}
	if c.Agent.Timeout < 0 {
		return fmt.Errorf("agent timeout must not be negative")
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	c.Operator.PrivateKey = shared.MaskSecret(c.Operator.PrivateKey)
	c.LLM.APIKey = shared.MaskSecret(c.LLM.APIKey)
	c.Mirror.APIKey = shared.MaskSecret(c.Mirror.APIKey)
	return c
}

func setString(target *string, keys ...string) {
	if value := shared.FirstNonEmptyEnv(keys...); value != "" {
		*target = value
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
