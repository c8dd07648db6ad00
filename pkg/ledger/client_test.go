package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKeyDER = "302e020100300506032b65700422042091132178e72057a1d7528025956fe39b0b847f200ab59b2fdd367017f3087137"

func TestNewClientValidCredentials(t *testing.T) {
	client, err := NewClient(Config{AccountID: "0.0.12345", PrivateKey: testPrivateKeyDER})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "0.0.12345", client.OperatorAccountID())
	assert.Equal(t, "testnet", client.Network())
	assert.NotNil(t, client.HederaClient())
}

func TestNewClientRejectsMissingCredentials(t *testing.T) {
	cases := map[string]Config{
		"missing account": {PrivateKey: testPrivateKeyDER},
		"missing key":     {AccountID: "0.0.12345"},
		"blank key":       {AccountID: "0.0.12345", PrivateKey: "   "},
	}
	for name, config := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewClient(config)
			require.Error(t, err)
		})
	}
}

func TestNewClientRejectsMalformedInput(t *testing.T) {
	cases := map[string]Config{
		"bad account":    {AccountID: "not-an-account", PrivateKey: testPrivateKeyDER},
		"bad key":        {AccountID: "0.0.12345", PrivateKey: "zz-not-der"},
		"bad network":    {AccountID: "0.0.12345", PrivateKey: testPrivateKeyDER, Network: "devnet"},
		"bad key format": {AccountID: "0.0.12345", PrivateKey: testPrivateKeyDER, KeyFormat: "pem"},
	}
	for name, config := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewClient(config)
			require.Error(t, err)
		})
	}
}

func TestNewClientAutoKeyFormat(t *testing.T) {
	client, err := NewClient(Config{
		AccountID:  "0.0.12345",
		PrivateKey: testPrivateKeyDER,
		Network:    "mainnet",
		KeyFormat:  "auto",
	})
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "mainnet", client.Network())
}

func TestOperationsHonourCancelledContext(t *testing.T) {
	client, err := NewClient(Config{AccountID: "0.0.12345", PrivateKey: testPrivateKeyDER})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GetHbarBalance(ctx, "")
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = client.TransferHbar(ctx, TransferOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = client.CreateAccount(ctx, AccountCreateOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = client.CreateTopic(ctx, TopicCreateOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = client.SubmitTopicMessage(ctx, "0.0.1", "hello")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGetHbarBalanceRejectsBadAccount(t *testing.T) {
	client, err := NewClient(Config{AccountID: "0.0.12345", PrivateKey: testPrivateKeyDER})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.GetHbarBalance(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidAccountID)
}

func TestSubmitTopicMessageValidation(t *testing.T) {
	client, err := NewClient(Config{AccountID: "0.0.12345", PrivateKey: testPrivateKeyDER})
	require.NoError(t, err)
	defer client.Close()

	_, err = client.SubmitTopicMessage(context.Background(), "0.0.1", "")
	assert.Error(t, err)
	_, err = client.SubmitTopicMessage(context.Background(), "topic", "hello")
	assert.Error(t, err)
}

func TestNormalizeEVMAddress(t *testing.T) {
	assert.Equal(t, "", normalizeEVMAddress("  "))
	assert.Equal(t, "0xabc", normalizeEVMAddress("abc"))
	assert.Equal(t, "0Xabc", normalizeEVMAddress("0Xabc"))
}
