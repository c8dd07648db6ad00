// Hedera Agent for Go connects a large-language-model agent to the Hedera
// public ledger. It wires a langchaingo agent executor to a toolkit of
// prebuilt Hedera operations so a natural-language request such as
// "what's my balance?" is answered by querying the network.
//
// # Packages
//
//   - shared: operator credentials from the environment, key parsing, network names
//   - mirror: Hedera mirror node REST reads
//   - ledger: authenticated Hedera client (balances, accounts, transfers, topics)
//   - toolkit: ledger operations exposed as langchaingo tools
//   - prompt: the four-slot chat prompt used by the agent
//   - llm: language-model construction (OpenAI, Ollama)
//   - agent: agent + executor with a single Invoke entry point
//   - config, logging: runtime configuration and zap logging
//
// The hedera-agent command in cmd/hedera-agent runs one request, or reads
// requests from stdin with -interactive. examples/balance-query is the
// minimal wiring of the same pieces.
//
// # Getting Started
//
//	ACCOUNT_ID=0.0.1234 PRIVATE_KEY=302e... OPENAI_API_KEY=sk-... \
//		go run ./cmd/hedera-agent -query "what's my balance?"
//
// Hashgraph Online ecosystem: https://hol.org
package hedera_agent_go
