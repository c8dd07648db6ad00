// Package mirror is a small read-only client for the Hedera mirror node REST
// API. The agent toolkit uses it for account details, topic messages and
// transaction records, none of which need a signed query against consensus
// nodes.
package mirror
