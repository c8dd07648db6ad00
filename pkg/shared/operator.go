package shared

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/joho/godotenv"
)

const (
	KeyFormatDER  = "der"
	KeyFormatAuto = "auto"
)

// ErrMissingCredentials is returned when the operator account ID or private
// key cannot be resolved from the environment.
var ErrMissingCredentials = errors.New("missing operator credentials")

type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

var (
	accountIDEnvKeys  = []string{"HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "ACCOUNT_ID", "OPERATOR_ID"}
	privateKeyEnvKeys = []string{"HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "PRIVATE_KEY", "OPERATOR_KEY"}
)

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv resolves the operator account and key from the
// process environment, loading the nearest .env file first.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	LoadDotEnv()

	network := firstNonEmptyEnv("HEDERA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	accountID, privateKey := OperatorCredentialsFromEnv(network)

	if accountID == "" {
		return OperatorConfig{}, fmt.Errorf("%w: ACCOUNT_ID is required", ErrMissingCredentials)
	}
	if privateKey == "" {
		return OperatorConfig{}, fmt.Errorf("%w: PRIVATE_KEY is required", ErrMissingCredentials)
	}

	return OperatorConfig{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}, nil
}

// OperatorCredentialsFromEnv returns the account ID and private key found in
// the environment, either of which may be empty. MAINNET_ and TESTNET_
// prefixed variables override the plain names for that network.
func OperatorCredentialsFromEnv(network string) (accountID string, privateKey string) {
	accountID = firstNonEmptyEnv(accountIDEnvKeys...)
	privateKey = firstNonEmptyEnv(privateKeyEnvKeys...)

	scope := strings.ToUpper(strings.TrimSpace(network))
	switch strings.ToLower(scope) {
	case NetworkMainnet, NetworkTestnet:
		if scopedAccount := firstNonEmptyEnv(
			scope+"_HEDERA_ACCOUNT_ID",
			scope+"_HEDERA_OPERATOR_ID",
			scope+"_OPERATOR_ID",
		); scopedAccount != "" {
			accountID = scopedAccount
		}
		if scopedKey := firstNonEmptyEnv(
			scope+"_HEDERA_PRIVATE_KEY",
			scope+"_HEDERA_OPERATOR_KEY",
			scope+"_OPERATOR_KEY",
		); scopedKey != "" {
			privateKey = scopedKey
		}
	}
	return accountID, privateKey
}

// LoadDotEnv loads the first .env file found walking up from the working
// directory. Variables already present in the environment win. It runs once
// per process.
func LoadDotEnv() {
	dotenvLoadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		current := cwd
		for {
			candidate := filepath.Join(current, ".env")
			if _, statErr := os.Stat(candidate); statErr == nil {
				loadDotEnvFile(candidate)
				return
			}

			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

func loadDotEnvFile(path string) bool {
	values, err := godotenv.Read(path)
	if err != nil {
		return false
	}

	loadedAny := false
	for key, value := range values {
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// FirstNonEmptyEnv returns the first non-blank value among the given
// environment variables.
func FirstNonEmptyEnv(keys ...string) string {
	return firstNonEmptyEnv(keys...)
}

// ParsePrivateKeyDER parses hex-encoded DER key material. Raw hex keys are
// rejected because their curve cannot be inferred.
func ParsePrivateKeyDER(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	key, err := hedera.PrivateKeyFromStringDer(candidate)
	if err != nil {
		return hedera.PrivateKey{}, fmt.Errorf("private key is not valid DER: %w", err)
	}
	return key, nil
}

// ParsePrivateKey parses key material as ED25519, then ECDSA, then any
// format the SDK recognises.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}

// ParsePrivateKeyWithFormat dispatches on the configured key format.
func ParsePrivateKeyWithFormat(raw string, format string) (hedera.PrivateKey, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", KeyFormatDER:
		return ParsePrivateKeyDER(raw)
	case KeyFormatAuto:
		return ParsePrivateKey(raw)
	default:
		return hedera.PrivateKey{}, fmt.Errorf("unsupported key format %q", format)
	}
}

// MaskSecret keeps the last four characters of a secret for log output.
func MaskSecret(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
