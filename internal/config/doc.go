// Package config holds the environment configuration for the coffee shop
// service.
//
// Configuration is loaded once from environment variables at startup, with
// development defaults, and is never mutated afterwards. Consumers receive
// the record by value.
package config
