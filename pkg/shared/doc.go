// Package shared holds the pieces every other package needs before talking
// to Hedera: operator credentials from the environment (and .env files),
// private key parsing, and network name normalization.
//
// # Environment Variables
//
// The operator account is read from HEDERA_ACCOUNT_ID, HEDERA_OPERATOR_ID,
// ACCOUNT_ID or OPERATOR_ID, and the key from HEDERA_PRIVATE_KEY,
// HEDERA_OPERATOR_KEY, PRIVATE_KEY or OPERATOR_KEY. MAINNET_ and TESTNET_
// prefixed variants override the plain names for the selected network.
package shared
