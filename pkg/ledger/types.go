package ledger

import hedera "github.com/hashgraph/hedera-sdk-go/v2"

const (
	DefaultAccountMemo = "created by hedera-agent-go"
)

type Config struct {
	AccountID  string
	PrivateKey string
	Network    string
	// KeyFormat is "der" (default) or "auto".
	KeyFormat string
}

type Balance struct {
	AccountID string
	Hbars     hedera.Hbar
	Tinybars  int64
}

type AccountCreateOptions struct {
	// PublicKey is optional; a new ECDSA key pair is generated when empty.
	PublicKey                     string
	InitialBalanceHbar            float64
	AccountMemo                   string
	MaxAutomaticTokenAssociations *int32
}

type AccountCreateResult struct {
	AccountID     string
	PublicKey     string
	PrivateKeyDER string
	EVMAddress    string
	TransactionID string
	Status        string
}

type Recipient struct {
	AccountID string
	Amount    float64
}

type TransferOptions struct {
	Recipients      []Recipient
	TransactionMemo string
}

type TransferResult struct {
	TransactionID string
	Status        string
	TotalTinybars int64
}

type TopicCreateOptions struct {
	Memo         string
	UseSubmitKey bool
}

type TopicCreateResult struct {
	TopicID       string
	TransactionID string
	Status        string
}

type TopicMessageResult struct {
	TopicID        string
	SequenceNumber uint64
	TransactionID  string
	Status         string
}
