package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/hedera-agent-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// Client is an operator-authenticated handle to a Hedera network.
type Client struct {
	hederaClient *hedera.Client
	operatorID   hedera.AccountID
	operatorKey  hedera.PrivateKey
	network      string
}

// NewClient validates the operator credentials and returns a client for the
// configured network. Nothing is sent to the network here, so bad
// credentials fail before any query or transaction is attempted.
func NewClient(config Config) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	operatorID := strings.TrimSpace(config.AccountID)
	if operatorID == "" {
		return nil, fmt.Errorf("operator account ID is required")
	}
	if strings.TrimSpace(config.PrivateKey) == "" {
		return nil, fmt.Errorf("operator private key is required")
	}

	parsedOperatorID, err := hedera.AccountIDFromString(operatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}
	parsedOperatorKey, err := shared.ParsePrivateKeyWithFormat(config.PrivateKey, config.KeyFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid operator private key: %w", err)
	}

	hederaClient, err := shared.NewHederaClient(network)
	if err != nil {
		return nil, err
	}
	hederaClient.SetOperator(parsedOperatorID, parsedOperatorKey)

	return &Client{
		hederaClient: hederaClient,
		operatorID:   parsedOperatorID,
		operatorKey:  parsedOperatorKey,
		network:      network,
	}, nil
}

func (c *Client) HederaClient() *hedera.Client {
	return c.hederaClient
}

func (c *Client) OperatorAccountID() string {
	return c.operatorID.String()
}

func (c *Client) Network() string {
	return c.network
}

func (c *Client) Close() error {
	return c.hederaClient.Close()
}

// GetHbarBalance queries the hbar balance of accountID, or of the operator
// when accountID is empty.
func (c *Client) GetHbarBalance(ctx context.Context, accountID string) (Balance, error) {
	if err := ctx.Err(); err != nil {
		return Balance{}, err
	}

	target := c.operatorID
	if trimmed := strings.TrimSpace(accountID); trimmed != "" {
		parsed, err := hedera.AccountIDFromString(trimmed)
		if err != nil {
			return Balance{}, fmt.Errorf("%w %q: %v", ErrInvalidAccountID, trimmed, err)
		}
		target = parsed
	}

	balance, err := hedera.NewAccountBalanceQuery().
		SetAccountID(target).
		Execute(c.hederaClient)
	if err != nil {
		return Balance{}, fmt.Errorf("failed to query balance of %s: %w", target, err)
	}

	return Balance{
		AccountID: target.String(),
		Hbars:     balance.Hbars,
		Tinybars:  balance.Hbars.AsTinybar(),
	}, nil
}

// CreateAccount creates an account owned by options.PublicKey, or by a
// freshly generated ECDSA key whose DER encoding is returned in the result.
func (c *Client) CreateAccount(ctx context.Context, options AccountCreateOptions) (AccountCreateResult, error) {
	if err := ctx.Err(); err != nil {
		return AccountCreateResult{}, err
	}

	result := AccountCreateResult{}
	var publicKey hedera.PublicKey
	if raw := strings.TrimSpace(options.PublicKey); raw != "" {
		parsed, err := hedera.PublicKeyFromString(raw)
		if err != nil {
			return AccountCreateResult{}, fmt.Errorf("invalid public key: %w", err)
		}
		publicKey = parsed
	} else {
		privateKey, err := hedera.PrivateKeyGenerateEcdsa()
		if err != nil {
			return AccountCreateResult{}, fmt.Errorf("failed to generate ecdsa private key: %w", err)
		}
		publicKey = privateKey.PublicKey()
		result.PrivateKeyDER = privateKey.StringDer()
		result.EVMAddress = normalizeEVMAddress(publicKey.ToEvmAddress())
	}
	result.PublicKey = publicKey.StringDer()

	transaction, err := BuildAccountCreateTx(publicKey, options)
	if err != nil {
		return AccountCreateResult{}, err
	}

	response, err := transaction.Execute(c.hederaClient)
	if err != nil {
		return AccountCreateResult{}, fmt.Errorf("failed to execute account create transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return AccountCreateResult{}, fmt.Errorf("failed to retrieve account create receipt: %w", err)
	}
	if receipt.AccountID == nil {
		return AccountCreateResult{}, fmt.Errorf("account create receipt did not include an account ID")
	}

	result.AccountID = receipt.AccountID.String()
	result.TransactionID = response.TransactionID.String()
	result.Status = receipt.Status.String()
	return result, nil
}

// TransferHbar moves hbar from the operator to every recipient in a single
// transaction.
func (c *Client) TransferHbar(ctx context.Context, options TransferOptions) (TransferResult, error) {
	if err := ctx.Err(); err != nil {
		return TransferResult{}, err
	}

	transaction, total, err := BuildTransferTx(c.operatorID, options)
	if err != nil {
		return TransferResult{}, err
	}

	response, err := transaction.Execute(c.hederaClient)
	if err != nil {
		return TransferResult{}, fmt.Errorf("failed to execute transfer transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return TransferResult{}, fmt.Errorf("failed to retrieve transfer receipt: %w", err)
	}

	return TransferResult{
		TransactionID: response.TransactionID.String(),
		Status:        receipt.Status.String(),
		TotalTinybars: total,
	}, nil
}

func (c *Client) CreateTopic(ctx context.Context, options TopicCreateOptions) (TopicCreateResult, error) {
	if err := ctx.Err(); err != nil {
		return TopicCreateResult{}, err
	}

	var submitKey hedera.Key
	if options.UseSubmitKey {
		submitKey = c.operatorKey.PublicKey()
	}

	response, err := BuildTopicCreateTx(options, submitKey).Execute(c.hederaClient)
	if err != nil {
		return TopicCreateResult{}, fmt.Errorf("failed to execute topic create transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return TopicCreateResult{}, fmt.Errorf("failed to retrieve topic create receipt: %w", err)
	}
	if receipt.TopicID == nil {
		return TopicCreateResult{}, fmt.Errorf("topic create receipt did not include a topic ID")
	}

	return TopicCreateResult{
		TopicID:       receipt.TopicID.String(),
		TransactionID: response.TransactionID.String(),
		Status:        receipt.Status.String(),
	}, nil
}

func (c *Client) SubmitTopicMessage(ctx context.Context, topicID string, message string) (TopicMessageResult, error) {
	if err := ctx.Err(); err != nil {
		return TopicMessageResult{}, err
	}
	if message == "" {
		return TopicMessageResult{}, fmt.Errorf("message is required")
	}

	parsedTopicID, err := hedera.TopicIDFromString(strings.TrimSpace(topicID))
	if err != nil {
		return TopicMessageResult{}, fmt.Errorf("invalid topic ID: %w", err)
	}

	response, err := hedera.NewTopicMessageSubmitTransaction().
		SetTopicID(parsedTopicID).
		SetMessage([]byte(message)).
		Execute(c.hederaClient)
	if err != nil {
		return TopicMessageResult{}, fmt.Errorf("failed to execute message submit transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return TopicMessageResult{}, fmt.Errorf("failed to get message submit receipt: %w", err)
	}

	return TopicMessageResult{
		TopicID:        parsedTopicID.String(),
		SequenceNumber: receipt.TopicSequenceNumber,
		TransactionID:  response.TransactionID.String(),
		Status:         receipt.Status.String(),
	}, nil
}

func normalizeEVMAddress(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		return trimmed
	}
	return "0x" + trimmed
}
