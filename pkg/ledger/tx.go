package ledger

import (
	"fmt"
	"math"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// BuildTransferTx debits the payer for the sum of all recipient amounts.
// Repeated recipients are merged.
func BuildTransferTx(payer hedera.AccountID, options TransferOptions) (*hedera.TransferTransaction, int64, error) {
	if len(options.Recipients) == 0 {
		return nil, 0, ErrNoRecipients
	}

	credits := make(map[hedera.AccountID]int64, len(options.Recipients))
	order := make([]hedera.AccountID, 0, len(options.Recipients))
	var total int64
	for _, recipient := range options.Recipients {
		accountID, err := hedera.AccountIDFromString(strings.TrimSpace(recipient.AccountID))
		if err != nil {
			return nil, 0, fmt.Errorf("%w %q: %v", ErrInvalidAccountID, recipient.AccountID, err)
		}
		if accountID.String() == payer.String() {
			return nil, 0, fmt.Errorf("cannot transfer to the paying account %s", accountID)
		}

		tinybars := hedera.NewHbar(recipient.Amount).AsTinybar()
		if tinybars <= 0 {
			return nil, 0, fmt.Errorf("%w: %v hbar to %s", ErrInvalidAmount, recipient.Amount, accountID)
		}

		if total > math.MaxInt64-tinybars {
			return nil, 0, fmt.Errorf("%w: transfer total exceeds %d tinybars", ErrInvalidAmount, int64(math.MaxInt64))
		}

		if _, seen := credits[accountID]; !seen {
			order = append(order, accountID)
		}
		credits[accountID] += tinybars
		total += tinybars
	}

	transaction := hedera.NewTransferTransaction().
		AddHbarTransfer(payer, hedera.HbarFromTinybar(-total))
	for _, accountID := range order {
		transaction.AddHbarTransfer(accountID, hedera.HbarFromTinybar(credits[accountID]))
	}

	if memo := strings.TrimSpace(options.TransactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, total, nil
}

// BuildAccountCreateTx builds an account create transaction for publicKey.
func BuildAccountCreateTx(publicKey hedera.PublicKey, options AccountCreateOptions) (*hedera.AccountCreateTransaction, error) {
	if options.InitialBalanceHbar < 0 {
		return nil, fmt.Errorf("initial balance must not be negative")
	}

	memo := strings.TrimSpace(options.AccountMemo)
	if memo == "" {
		memo = DefaultAccountMemo
	}

	transaction := hedera.NewAccountCreateTransaction().
		SetKey(publicKey).
		SetInitialBalance(hedera.NewHbar(options.InitialBalanceHbar)).
		SetAccountMemo(memo)

	if options.MaxAutomaticTokenAssociations != nil {
		transaction.SetMaxAutomaticTokenAssociations(*options.MaxAutomaticTokenAssociations)
	}

	return transaction, nil
}

// BuildTopicCreateTx builds a topic create transaction. submitKey may be nil
// for a public topic.
func BuildTopicCreateTx(options TopicCreateOptions, submitKey hedera.Key) *hedera.TopicCreateTransaction {
	transaction := hedera.NewTopicCreateTransaction()
	if memo := strings.TrimSpace(options.Memo); memo != "" {
		transaction.SetTopicMemo(memo)
	}
	if submitKey != nil {
		transaction.SetSubmitKey(submitKey)
	}
	return transaction
}
