// Package handler exposes the drinks API over HTTP. The public listing is
// open; every other route requires a bearer token granting the matching
// permission.
package handler
