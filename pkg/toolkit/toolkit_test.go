package toolkit

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hashgraph-online/hedera-agent-go/pkg/ledger"
	"github.com/hashgraph-online/hedera-agent-go/pkg/mirror"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	balanceAccount string
	createOptions  ledger.AccountCreateOptions
	transfer       ledger.TransferOptions
	topicOptions   ledger.TopicCreateOptions
	submitted      []string
	err            error
}

func (f *fakeLedger) OperatorAccountID() string { return "0.0.1001" }

func (f *fakeLedger) GetHbarBalance(_ context.Context, accountID string) (ledger.Balance, error) {
	f.balanceAccount = accountID
	if f.err != nil {
		return ledger.Balance{}, f.err
	}
	return ledger.Balance{AccountID: accountID, Hbars: hedera.NewHbar(42), Tinybars: 4_200_000_000}, nil
}

func (f *fakeLedger) CreateAccount(_ context.Context, options ledger.AccountCreateOptions) (ledger.AccountCreateResult, error) {
	f.createOptions = options
	return ledger.AccountCreateResult{
		AccountID:     "0.0.5005",
		PublicKey:     "302a...",
		PrivateKeyDER: "3030...",
		EVMAddress:    "0xabc",
		TransactionID: "0.0.1001@1700000000.000000001",
		Status:        "SUCCESS",
	}, f.err
}

func (f *fakeLedger) TransferHbar(_ context.Context, options ledger.TransferOptions) (ledger.TransferResult, error) {
	f.transfer = options
	if f.err != nil {
		return ledger.TransferResult{}, f.err
	}
	return ledger.TransferResult{TransactionID: "0.0.1001@1700000000.000000002", Status: "SUCCESS", TotalTinybars: 150_000_000}, nil
}

func (f *fakeLedger) CreateTopic(_ context.Context, options ledger.TopicCreateOptions) (ledger.TopicCreateResult, error) {
	f.topicOptions = options
	return ledger.TopicCreateResult{TopicID: "0.0.7007", Status: "SUCCESS"}, f.err
}

func (f *fakeLedger) SubmitTopicMessage(_ context.Context, topicID string, message string) (ledger.TopicMessageResult, error) {
	f.submitted = append(f.submitted, topicID+":"+message)
	return ledger.TopicMessageResult{TopicID: topicID, SequenceNumber: 3, Status: "SUCCESS"}, f.err
}

type fakeMirror struct {
	messageOptions mirror.MessageQueryOptions
	transactionID  string
}

func (f *fakeMirror) GetAccount(_ context.Context, accountID string) (mirror.AccountInfo, error) {
	if accountID == "0.0.404" {
		return mirror.AccountInfo{}, &mirror.StatusError{StatusCode: 404}
	}
	info := mirror.AccountInfo{Account: accountID, Memo: "hello", EVMAddress: "0xdef"}
	info.Balance.Balance = 100_000_000
	info.Balance.Tokens = []mirror.TokenBalance{{TokenID: "0.0.9", Balance: 5}}
	return info, nil
}

func (f *fakeMirror) GetTopicInfo(_ context.Context, topicID string) (mirror.TopicInfo, error) {
	return mirror.TopicInfo{
		TopicID:          topicID,
		Memo:             "notes",
		SubmitKey:        map[string]any{"_type": "ED25519", "key": "abcd"},
		AutoRenewAccount: "0.0.1001",
		AutoRenewPeriod:  7776000,
	}, nil
}

func (f *fakeMirror) GetTopicMessages(_ context.Context, topicID string, options mirror.MessageQueryOptions) ([]mirror.TopicMessage, error) {
	f.messageOptions = options
	return []mirror.TopicMessage{
		{SequenceNumber: 2, Message: base64.StdEncoding.EncodeToString([]byte("second"))},
		{SequenceNumber: 1, Message: base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe})},
	}, nil
}

func (f *fakeMirror) GetTransaction(_ context.Context, transactionID string) (*mirror.Transaction, error) {
	f.transactionID = transactionID
	if transactionID == "missing" {
		return nil, nil
	}
	return &mirror.Transaction{
		TransactionID: transactionID,
		Result:        "SUCCESS",
		ChargedTxFee:  100_000,
		Transfers:     []mirror.Transfer{{Account: "0.0.2", Amount: 50_000_000}},
	}, nil
}

func newTestToolkit(t *testing.T, configuration Configuration) (*Toolkit, *fakeLedger, *fakeMirror) {
	t.Helper()
	ledgerClient := &fakeLedger{}
	mirrorClient := &fakeMirror{}
	kit, err := New(Options{Ledger: ledgerClient, Mirror: mirrorClient, Configuration: configuration})
	require.NoError(t, err)
	return kit, ledgerClient, mirrorClient
}

func callTool(t *testing.T, kit *Toolkit, name string, input string) map[string]any {
	t.Helper()
	tool, err := kit.Tool(name)
	require.NoError(t, err)

	output, err := tool.Call(context.Background(), input)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded), "output: %s", output)
	return decoded
}

func TestNewRequiresLedger(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestEmptyAllowListLoadsEveryTool(t *testing.T) {
	kit, _, _ := newTestToolkit(t, Configuration{})

	tools := kit.GetTools()
	require.NotEmpty(t, tools)
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name())
		assert.NotEmpty(t, tool.Description())
	}
	assert.Equal(t, AllToolNames(), names)
	assert.Equal(t, AllToolNames(), kit.AvailableToolNames())
}

func TestAllowListIsIntersection(t *testing.T) {
	kit, _, _ := newTestToolkit(t, Configuration{Tools: []string{
		TransferHbarToolName,
		"delete_everything_tool",
		GetHbarBalanceToolName,
		TransferHbarToolName,
	}})

	tools := kit.GetTools()
	require.Len(t, tools, 2)
	assert.Equal(t, TransferHbarToolName, tools[0].Name())
	assert.Equal(t, GetHbarBalanceToolName, tools[1].Name())

	_, err := kit.Tool(CreateTopicToolName)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestAllowListWithNoKnownNames(t *testing.T) {
	kit, _, _ := newTestToolkit(t, Configuration{Tools: []string{"nope"}})
	assert.Empty(t, kit.GetTools())
}

func TestMirrorToolsNeedMirrorClient(t *testing.T) {
	kit, err := New(Options{Ledger: &fakeLedger{}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		GetHbarBalanceToolName,
		CreateAccountToolName,
		TransferHbarToolName,
		CreateTopicToolName,
		SubmitTopicMessageToolName,
	}, kit.AvailableToolNames())
}

func TestGetHbarBalanceDefaultsToOperator(t *testing.T) {
	kit, ledgerClient, _ := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, GetHbarBalanceToolName, "")
	assert.Equal(t, "0.0.1001", ledgerClient.balanceAccount)
	assert.Equal(t, "0.0.1001", output["account_id"])
	assert.Equal(t, float64(4_200_000_000), output["tinybars"])
	assert.NotEmpty(t, output["hbars"])
}

func TestGetHbarBalanceInputForms(t *testing.T) {
	kit, ledgerClient, _ := newTestToolkit(t, Configuration{})

	for _, input := range []string{"0.0.2002", `"0.0.2002"`, `{"account_id": "0.0.2002"}`} {
		callTool(t, kit, GetHbarBalanceToolName, input)
		assert.Equal(t, "0.0.2002", ledgerClient.balanceAccount, "input %s", input)
	}
}

func TestToolErrorsAreReportedAsText(t *testing.T) {
	ledgerClient := &fakeLedger{err: errors.New("INSUFFICIENT_PAYER_BALANCE")}
	kit, err := New(Options{Ledger: ledgerClient})
	require.NoError(t, err)

	tool, err := kit.Tool(TransferHbarToolName)
	require.NoError(t, err)

	output, err := tool.Call(context.Background(), `{"account_id": "0.0.2", "amount": 1}`)
	require.NoError(t, err)
	assert.Contains(t, output, "Failed to run transfer_hbar_tool")
	assert.Contains(t, output, "INSUFFICIENT_PAYER_BALANCE")

	output, err = tool.Call(context.Background(), `{"amount": }`)
	require.NoError(t, err)
	assert.Contains(t, output, ErrInvalidInput.Error())
}

func TestTransferHbarInputs(t *testing.T) {
	kit, ledgerClient, _ := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, TransferHbarToolName, `{"transfers": [{"account_id": "0.0.2", "amount": 1}, {"account_id": "0.0.3", "amount": "0.5 HBAR"}], "transaction_memo": "lunch"}`)
	assert.Equal(t, "SUCCESS", output["status"])
	assert.Equal(t, []ledger.Recipient{{AccountID: "0.0.2", Amount: 1}, {AccountID: "0.0.3", Amount: 0.5}}, ledgerClient.transfer.Recipients)
	assert.Equal(t, "lunch", ledgerClient.transfer.TransactionMemo)

	callTool(t, kit, TransferHbarToolName, `{"account_id": "0.0.4", "amount": 2}`)
	assert.Equal(t, []ledger.Recipient{{AccountID: "0.0.4", Amount: 2}}, ledgerClient.transfer.Recipients)
}

func TestCreateAccountReturnsGeneratedKey(t *testing.T) {
	kit, ledgerClient, _ := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, CreateAccountToolName, `{"initial_balance": 5, "account_memo": "bot"}`)
	assert.Equal(t, "0.0.5005", output["account_id"])
	assert.Equal(t, "3030...", output["private_key"])
	assert.Equal(t, 5.0, ledgerClient.createOptions.InitialBalanceHbar)
	assert.Equal(t, "bot", ledgerClient.createOptions.AccountMemo)

	tool, _ := kit.Tool(CreateAccountToolName)
	text, err := tool.Call(context.Background(), `{"initial_balance": -1}`)
	require.NoError(t, err)
	assert.Contains(t, text, "negative")
}

func TestTopicTools(t *testing.T) {
	kit, ledgerClient, mirrorClient := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, CreateTopicToolName, `{"memo": "notes", "is_submit_key": true}`)
	assert.Equal(t, "0.0.7007", output["topic_id"])
	assert.True(t, ledgerClient.topicOptions.UseSubmitKey)

	output = callTool(t, kit, SubmitTopicMessageToolName, `{"topic_id": "0.0.7007", "message": "hi"}`)
	assert.Equal(t, float64(3), output["sequence_number"])
	assert.Equal(t, []string{"0.0.7007:hi"}, ledgerClient.submitted)

	output = callTool(t, kit, GetTopicMessagesToolName, "0.0.7007")
	assert.Equal(t, defaultTopicMessagesLimit, mirrorClient.messageOptions.Limit)
	assert.Equal(t, "desc", mirrorClient.messageOptions.Order)
	messages := output["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].(map[string]any)["message"])
	assert.Contains(t, messages[1].(map[string]any), "message_base64")
}

func TestGetTopicInfoTool(t *testing.T) {
	kit, _, _ := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, GetTopicInfoToolName, `{"topic_id": "0.0.7007"}`)
	assert.Equal(t, "0.0.7007", output["topic_id"])
	assert.Equal(t, "notes", output["memo"])
	assert.Equal(t, "0.0.1001", output["auto_renew_account"])
	assert.Equal(t, float64(7776000), output["auto_renew_period"])
	assert.Equal(t, "ED25519", output["submit_key"].(map[string]any)["_type"])
	assert.Nil(t, output["admin_key"])

	tool, err := kit.Tool(GetTopicInfoToolName)
	require.NoError(t, err)
	text, err := tool.Call(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, text, "topic_id is required")
}

func TestGetTopicMessagesClampsLimit(t *testing.T) {
	kit, _, mirrorClient := newTestToolkit(t, Configuration{})

	callTool(t, kit, GetTopicMessagesToolName, `{"topic_id": "0.0.7007", "limit": 5000, "order": "asc"}`)
	assert.Equal(t, mirror.MaxTopicMessagesPageSize, mirrorClient.messageOptions.Limit)
	assert.Equal(t, "asc", mirrorClient.messageOptions.Order)
}

func TestGetAccountTool(t *testing.T) {
	kit, _, _ := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, GetAccountToolName, "")
	assert.Equal(t, "0.0.1001", output["account_id"])
	assert.Equal(t, "0xdef", output["evm_address"])
	assert.Len(t, output["tokens"], 1)

	tool, _ := kit.Tool(GetAccountToolName)
	text, err := tool.Call(context.Background(), "0.0.404")
	require.NoError(t, err)
	assert.Contains(t, text, "not found")
}

func TestGetTransactionRecordTool(t *testing.T) {
	kit, _, mirrorClient := newTestToolkit(t, Configuration{})

	output := callTool(t, kit, GetTransactionRecordToolName, `{"transaction_id": "0.0.1001@1700000000.000000002"}`)
	assert.Equal(t, "0.0.1001@1700000000.000000002", mirrorClient.transactionID)
	assert.Equal(t, "SUCCESS", output["result"])
	assert.Len(t, output["transfers"], 1)

	tool, _ := kit.Tool(GetTransactionRecordToolName)
	text, err := tool.Call(context.Background(), "missing")
	require.NoError(t, err)
	assert.Contains(t, text, "not on the mirror node")
}

func TestHbarAmountParsing(t *testing.T) {
	cases := map[string]float64{
		`1.5`:          1.5,
		`"2"`:          2,
		`"3 hbar"`:     3,
		`"0.25 HBARS"`: 0.25,
		`"1 ℏ"`:        1,
	}
	for raw, expected := range cases {
		var amount hbarAmount
		require.NoError(t, json.Unmarshal([]byte(raw), &amount), raw)
		assert.Equal(t, expected, float64(amount), raw)
	}

	var amount hbarAmount
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &amount))
}
