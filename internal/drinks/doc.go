// Package drinks holds the drink domain model and its SQLite-backed store.
package drinks
