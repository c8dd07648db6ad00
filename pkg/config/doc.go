// Package config loads the runtime configuration from an optional YAML file
// and the environment.
package config
