// Package agent wires a language model, a tool set and a chat prompt into a
// tool-calling executor and answers natural-language requests with it.
package agent
