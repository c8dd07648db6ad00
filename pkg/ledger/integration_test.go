package ledger

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hashgraph-online/hedera-agent-go/pkg/shared"
)

func TestLedgerIntegration_BalanceAndTopic(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live integration tests")
	}

	operatorConfig, err := shared.OperatorConfigFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	if strings.EqualFold(operatorConfig.Network, shared.NetworkMainnet) && os.Getenv("ALLOW_MAINNET_INTEGRATION") != "1" {
		t.Skip("resolved mainnet credentials; set ALLOW_MAINNET_INTEGRATION=1 to allow live mainnet writes")
	}

	client, err := NewClient(Config{
		AccountID:  operatorConfig.AccountID,
		PrivateKey: operatorConfig.PrivateKey,
		Network:    operatorConfig.Network,
		KeyFormat:  shared.KeyFormatAuto,
	})
	if err != nil {
		t.Fatalf("failed to create ledger client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	balance, err := client.GetHbarBalance(ctx, "")
	if err != nil {
		t.Fatalf("failed to query operator balance: %v", err)
	}
	t.Logf("operator %s balance %s", balance.AccountID, balance.Hbars)

	topic, err := client.CreateTopic(ctx, TopicCreateOptions{Memo: "hedera-agent-go integration", UseSubmitKey: true})
	if err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}

	message, err := client.SubmitTopicMessage(ctx, topic.TopicID, "hello from the integration test")
	if err != nil {
		t.Fatalf("failed to submit message: %v", err)
	}
	if message.SequenceNumber != 1 {
		t.Fatalf("expected first sequence number, got %d", message.SequenceNumber)
	}
}
