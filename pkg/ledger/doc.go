// Package ledger wraps the Hedera Go SDK client with the operator account
// configured. It covers the operations the agent toolkit exposes: hbar
// balance queries, account creation, hbar transfers and consensus topics.
//
//	client, err := ledger.NewClient(ledger.Config{
//		AccountID:  "0.0.1234",
//		PrivateKey: "302e0201...",
//		Network:    "testnet",
//	})
//	balance, err := client.GetHbarBalance(ctx, "")
//
// The private key must be DER encoded unless KeyFormat is "auto".
package ledger
