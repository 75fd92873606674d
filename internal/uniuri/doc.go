// Package uniuri generates cryptographically secure random strings, used
// here for OAuth state tokens.
package uniuri
