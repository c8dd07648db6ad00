package mirror

type AccountInfo struct {
	Account    string         `json:"account"`
	Alias      string         `json:"alias"`
	Balance    AccountBalance `json:"balance"`
	CreatedAt  string         `json:"created_timestamp"`
	Deleted    bool           `json:"deleted"`
	EVMAddress string         `json:"evm_address"`
	Key        map[string]any `json:"key"`
	Memo       string         `json:"memo"`

	MaxAutomaticTokenAssociations int32 `json:"max_automatic_token_associations"`
}

type AccountBalance struct {
	Balance   int64          `json:"balance"`
	Timestamp string         `json:"timestamp"`
	Tokens    []TokenBalance `json:"tokens"`
}

type TokenBalance struct {
	TokenID string `json:"token_id"`
	Balance int64  `json:"balance"`
}

type TopicInfo struct {
	AdminKey         map[string]any `json:"admin_key"`
	AutoRenewAccount string         `json:"auto_renew_account"`
	AutoRenewPeriod  int64          `json:"auto_renew_period"`
	CreatedTimestamp string         `json:"created_timestamp"`
	Deleted          bool           `json:"deleted"`
	Memo             string         `json:"memo"`
	SubmitKey        map[string]any `json:"submit_key"`
	TopicID          string         `json:"topic_id"`
}

type TopicMessage struct {
	ConsensusTimestamp string `json:"consensus_timestamp"`
	Message            string `json:"message"`
	PayerAccountID     string `json:"payer_account_id"`
	SequenceNumber     int64  `json:"sequence_number"`
	TopicID            string `json:"topic_id"`
}

type topicMessagesResponse struct {
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
	Messages []TopicMessage `json:"messages"`
}

type Transaction struct {
	ChargedTxFee       int64      `json:"charged_tx_fee"`
	ConsensusTimestamp string     `json:"consensus_timestamp"`
	EntityID           *string    `json:"entity_id"`
	MemoBase64         string     `json:"memo_base64"`
	Name               string     `json:"name"`
	Result             string     `json:"result"`
	TransactionID      string     `json:"transaction_id"`
	Transfers          []Transfer `json:"transfers"`
}

type Transfer struct {
	Account    string `json:"account"`
	Amount     int64  `json:"amount"`
	IsApproval bool   `json:"is_approval"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
