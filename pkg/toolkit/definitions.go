package toolkit

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashgraph-online/hedera-agent-go/pkg/ledger"
	"github.com/hashgraph-online/hedera-agent-go/pkg/mirror"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	GetHbarBalanceToolName       = "get_hbar_balance_query_tool"
	GetAccountToolName           = "get_account_query_tool"
	CreateAccountToolName        = "create_account_tool"
	TransferHbarToolName         = "transfer_hbar_tool"
	CreateTopicToolName          = "create_topic_tool"
	SubmitTopicMessageToolName   = "submit_topic_message_tool"
	GetTopicInfoToolName         = "get_topic_info_query_tool"
	GetTopicMessagesToolName     = "get_topic_messages_query_tool"
	GetTransactionRecordToolName = "get_transaction_record_query_tool"

	defaultTopicMessagesLimit = 10
)

var definitions = []definition{
	{
		name: GetHbarBalanceToolName,
		description: `Returns the HBAR balance of a Hedera account.
Input: an account ID such as 0.0.1234, or {"account_id": "0.0.1234"}. Leave the input empty to get the balance of the operator account (the user's own account).`,
		handler: getHbarBalance,
	},
	{
		name: GetAccountToolName,
		description: `Returns mirror node details for a Hedera account: memo, EVM address, key, creation time, HBAR and token balances.
Input: an account ID such as 0.0.1234, or {"account_id": "0.0.1234"}. Empty input means the operator account.`,
		needsMirror: true,
		handler:     getAccount,
	},
	{
		name: CreateAccountToolName,
		description: `Creates a new Hedera account paid for by the operator account.
Input: JSON {"public_key": "<optional DER public key>", "initial_balance": <HBAR, default 0>, "account_memo": "<optional>", "max_automatic_token_associations": <optional int>}.
When no public key is given a new ECDSA key pair is generated and its private key is returned; tell the user to store it safely.`,
		handler: createAccount,
	},
	{
		name: TransferHbarToolName,
		description: `Transfers HBAR from the operator account to one or more accounts.
Input: JSON {"transfers": [{"account_id": "0.0.1234", "amount": 1.5}], "transaction_memo": "<optional>"}. The shorthand {"account_id": "0.0.1234", "amount": 1.5} is also accepted. Amounts are in HBAR and must be positive.`,
		handler: transferHbar,
	},
	{
		name: CreateTopicToolName,
		description: `Creates a Hedera Consensus Service topic.
Input: JSON {"memo": "<optional topic memo>", "is_submit_key": <true to restrict submissions to the operator>}.`,
		handler: createTopic,
	},
	{
		name: SubmitTopicMessageToolName,
		description: `Submits a text message to a Hedera Consensus Service topic.
Input: JSON {"topic_id": "0.0.1234", "message": "<text>"}.`,
		handler: submitTopicMessage,
	},
	{
		name: GetTopicInfoToolName,
		description: `Returns mirror node details for a Hedera Consensus Service topic: memo, admin key, submit key, auto-renew account and period, creation time and whether it is deleted.
Input: a topic ID such as 0.0.1234, or {"topic_id": "0.0.1234"}.`,
		needsMirror: true,
		handler:     getTopicInfo,
	},
	{
		name: GetTopicMessagesToolName,
		description: `Reads messages from a Hedera Consensus Service topic, newest first by default.
Input: a topic ID, or JSON {"topic_id": "0.0.1234", "limit": <1-100, default 10>, "order": "asc" | "desc"}.`,
		needsMirror: true,
		handler:     getTopicMessages,
	},
	{
		name: GetTransactionRecordToolName,
		description: `Looks up a transaction on the mirror node: result, fee, consensus time and HBAR transfers.
Input: a transaction ID (0.0.1234@1700000000.000000000 or 0.0.1234-1700000000-000000000), or {"transaction_id": "..."}.`,
		needsMirror: true,
		handler:     getTransactionRecord,
	},
}

type accountInput struct {
	AccountID string `json:"account_id"`
}

func (t *Tool) resolveAccount(input string) (string, error) {
	var params accountInput
	if err := decodeInput(input, &params, func(value string) { params.AccountID = value }); err != nil {
		return "", err
	}
	accountID := strings.TrimSpace(params.AccountID)
	if accountID == "" {
		accountID = t.ledger.OperatorAccountID()
	}
	return accountID, nil
}

func getHbarBalance(ctx context.Context, t *Tool, input string) (any, error) {
	accountID, err := t.resolveAccount(input)
	if err != nil {
		return nil, err
	}

	balance, err := t.ledger.GetHbarBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"account_id": balance.AccountID,
		"hbars":      balance.Hbars.String(),
		"tinybars":   balance.Tinybars,
	}, nil
}

func getAccount(ctx context.Context, t *Tool, input string) (any, error) {
	accountID, err := t.resolveAccount(input)
	if err != nil {
		return nil, err
	}

	info, err := t.mirror.GetAccount(ctx, accountID)
	if err != nil {
		if mirror.IsNotFound(err) {
			return nil, fmt.Errorf("account %s was not found on the mirror node", accountID)
		}
		return nil, err
	}

	tokens := make([]map[string]any, 0, len(info.Balance.Tokens))
	for _, token := range info.Balance.Tokens {
		tokens = append(tokens, map[string]any{"token_id": token.TokenID, "balance": token.Balance})
	}

	return map[string]any{
		"account_id":        info.Account,
		"memo":              info.Memo,
		"evm_address":       info.EVMAddress,
		"key":               info.Key,
		"created_timestamp": info.CreatedAt,
		"deleted":           info.Deleted,
		"hbars":             hedera.HbarFromTinybar(info.Balance.Balance).String(),
		"tinybars":          info.Balance.Balance,
		"tokens":            tokens,
	}, nil
}

type createAccountInput struct {
	PublicKey                     string     `json:"public_key"`
	InitialBalance                hbarAmount `json:"initial_balance"`
	AccountMemo                   string     `json:"account_memo"`
	MaxAutomaticTokenAssociations *int32     `json:"max_automatic_token_associations"`
}

func createAccount(ctx context.Context, t *Tool, input string) (any, error) {
	var params createAccountInput
	if err := decodeInput(input, &params, nil); err != nil {
		return nil, err
	}
	if params.InitialBalance < 0 {
		return nil, fmt.Errorf("initial balance must not be negative")
	}

	result, err := t.ledger.CreateAccount(ctx, ledger.AccountCreateOptions{
		PublicKey:                     params.PublicKey,
		InitialBalanceHbar:            float64(params.InitialBalance),
		AccountMemo:                   params.AccountMemo,
		MaxAutomaticTokenAssociations: params.MaxAutomaticTokenAssociations,
	})
	if err != nil {
		return nil, err
	}

	output := map[string]any{
		"account_id":     result.AccountID,
		"public_key":     result.PublicKey,
		"transaction_id": result.TransactionID,
		"status":         result.Status,
	}
	if result.PrivateKeyDER != "" {
		output["private_key"] = result.PrivateKeyDER
		output["evm_address"] = result.EVMAddress
	}
	return output, nil
}

type transferEntry struct {
	AccountID string     `json:"account_id"`
	Amount    hbarAmount `json:"amount"`
}

type transferInput struct {
	Transfers       []transferEntry `json:"transfers"`
	AccountID       string          `json:"account_id"`
	Amount          hbarAmount      `json:"amount"`
	TransactionMemo string          `json:"transaction_memo"`
}

func transferHbar(ctx context.Context, t *Tool, input string) (any, error) {
	var params transferInput
	if err := decodeInput(input, &params, nil); err != nil {
		return nil, err
	}

	entries := params.Transfers
	if len(entries) == 0 && strings.TrimSpace(params.AccountID) != "" {
		entries = []transferEntry{{AccountID: params.AccountID, Amount: params.Amount}}
	}

	recipients := make([]ledger.Recipient, 0, len(entries))
	for _, entry := range entries {
		recipients = append(recipients, ledger.Recipient{
			AccountID: entry.AccountID,
			Amount:    float64(entry.Amount),
		})
	}

	result, err := t.ledger.TransferHbar(ctx, ledger.TransferOptions{
		Recipients:      recipients,
		TransactionMemo: params.TransactionMemo,
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"transaction_id": result.TransactionID,
		"status":         result.Status,
		"total_hbars":    hedera.HbarFromTinybar(result.TotalTinybars).String(),
	}, nil
}

type createTopicInput struct {
	Memo        string `json:"memo"`
	IsSubmitKey bool   `json:"is_submit_key"`
}

func createTopic(ctx context.Context, t *Tool, input string) (any, error) {
	var params createTopicInput
	if err := decodeInput(input, &params, nil); err != nil {
		return nil, err
	}

	result, err := t.ledger.CreateTopic(ctx, ledger.TopicCreateOptions{
		Memo:         params.Memo,
		UseSubmitKey: params.IsSubmitKey,
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"topic_id":       result.TopicID,
		"transaction_id": result.TransactionID,
		"status":         result.Status,
	}, nil
}

type submitTopicMessageInput struct {
	TopicID string `json:"topic_id"`
	Message string `json:"message"`
}

func submitTopicMessage(ctx context.Context, t *Tool, input string) (any, error) {
	var params submitTopicMessageInput
	if err := decodeInput(input, &params, nil); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.TopicID) == "" {
		return nil, fmt.Errorf("topic_id is required")
	}

	result, err := t.ledger.SubmitTopicMessage(ctx, params.TopicID, params.Message)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"topic_id":        result.TopicID,
		"sequence_number": result.SequenceNumber,
		"transaction_id":  result.TransactionID,
		"status":          result.Status,
	}, nil
}

type topicInfoInput struct {
	TopicID string `json:"topic_id"`
}

func getTopicInfo(ctx context.Context, t *Tool, input string) (any, error) {
	var params topicInfoInput
	if err := decodeInput(input, &params, func(value string) { params.TopicID = value }); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.TopicID) == "" {
		return nil, fmt.Errorf("topic_id is required")
	}

	info, err := t.mirror.GetTopicInfo(ctx, params.TopicID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"topic_id":           info.TopicID,
		"memo":               info.Memo,
		"admin_key":          info.AdminKey,
		"submit_key":         info.SubmitKey,
		"auto_renew_account": info.AutoRenewAccount,
		"auto_renew_period":  info.AutoRenewPeriod,
		"created_timestamp":  info.CreatedTimestamp,
		"deleted":            info.Deleted,
	}, nil
}

type topicMessagesInput struct {
	TopicID string `json:"topic_id"`
	Limit   int    `json:"limit"`
	Order   string `json:"order"`
}

func getTopicMessages(ctx context.Context, t *Tool, input string) (any, error) {
	var params topicMessagesInput
	if err := decodeInput(input, &params, func(value string) { params.TopicID = value }); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.TopicID) == "" {
		return nil, fmt.Errorf("topic_id is required")
	}

	limit := min(params.Limit, mirror.MaxTopicMessagesPageSize)
	if limit <= 0 {
		limit = defaultTopicMessagesLimit
	}
	order := params.Order
	if order == "" {
		order = "desc"
	}

	messages, err := t.mirror.GetTopicMessages(ctx, params.TopicID, mirror.MessageQueryOptions{
		Limit: limit,
		Order: order,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]map[string]any, 0, len(messages))
	for _, message := range messages {
		entry := map[string]any{
			"sequence_number":     message.SequenceNumber,
			"consensus_timestamp": message.ConsensusTimestamp,
			"payer_account_id":    message.PayerAccountID,
		}
		data, decodeErr := mirror.DecodeMessageData(message)
		switch {
		case decodeErr != nil:
			entry["message"] = ""
		case utf8.Valid(data):
			entry["message"] = string(data)
		default:
			entry["message_base64"] = message.Message
		}
		entries = append(entries, entry)
	}

	return map[string]any{
		"topic_id": strings.TrimSpace(params.TopicID),
		"messages": entries,
	}, nil
}

type transactionRecordInput struct {
	TransactionID string `json:"transaction_id"`
}

func getTransactionRecord(ctx context.Context, t *Tool, input string) (any, error) {
	var params transactionRecordInput
	if err := decodeInput(input, &params, func(value string) { params.TransactionID = value }); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.TransactionID) == "" {
		return nil, fmt.Errorf("transaction_id is required")
	}

	transaction, err := t.mirror.GetTransaction(ctx, params.TransactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, fmt.Errorf("transaction %s is not on the mirror node yet", params.TransactionID)
	}

	transfers := make([]map[string]any, 0, len(transaction.Transfers))
	for _, transfer := range transaction.Transfers {
		transfers = append(transfers, map[string]any{
			"account_id": transfer.Account,
			"amount":     hedera.HbarFromTinybar(transfer.Amount).String(),
		})
	}

	return map[string]any{
		"transaction_id":      transaction.TransactionID,
		"name":                transaction.Name,
		"result":              transaction.Result,
		"consensus_timestamp": transaction.ConsensusTimestamp,
		"charged_fee":         hedera.HbarFromTinybar(transaction.ChargedTxFee).String(),
		"transfers":           transfers,
	}, nil
}
