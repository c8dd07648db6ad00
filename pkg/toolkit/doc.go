// Package toolkit exposes Hedera operations as tmc/langchaingo tools so a
// language-model agent can call them.
//
// # Available Tools
//
//   - get_hbar_balance_query_tool: HBAR balance of an account (operator by default)
//   - get_account_query_tool: mirror node account details
//   - create_account_tool: create an account, generating a key if needed
//   - transfer_hbar_tool: send HBAR from the operator to one or more accounts
//   - create_topic_tool: create a consensus topic
//   - submit_topic_message_tool: publish a message to a topic
//   - get_topic_messages_query_tool: read topic messages from the mirror node
//   - get_transaction_record_query_tool: look up a transaction on the mirror node
//
// The mirror node tools are only offered when a mirror client is supplied.
//
// # Usage
//
//	kit, err := toolkit.New(toolkit.Options{
//		Ledger:        ledgerClient,
//		Mirror:        mirrorClient,
//		Configuration: toolkit.Configuration{Tools: nil}, // nil loads every tool
//	})
//	executor := agents.NewExecutor(agents.NewOpenAIFunctionsAgent(llm, kit.GetTools()))
package toolkit
