// Package config loads shipeval's run defaults.
//
// Values come from, in increasing priority: built-in defaults, an
// optional YAML file, then SHIPEVAL_-prefixed environment variables.
// Flags parsed in cmd/shipeval take priority over all of these.
package config
