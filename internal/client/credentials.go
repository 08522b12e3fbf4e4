package client

import (
	"encoding/base64"
	"sync"
)

// CredentialCache holds the encoded Basic credential for the life of the process.
// It is never persisted.
type CredentialCache struct {
	mu      sync.RWMutex
	encoded string
}

// NewCredentialCache creates an empty cache
func NewCredentialCache() *CredentialCache {
	return &CredentialCache{}
}

// Encode returns base64(username:password)
func Encode(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// Get returns the cached credential, if any
func (c *CredentialCache) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.encoded, c.encoded != ""
}

// Set stores an already encoded credential
func (c *CredentialCache) Set(encoded string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encoded = encoded
}

// Store encodes and stores a username/password pair
func (c *CredentialCache) Store(username, password string) string {
	encoded := Encode(username, password)
	c.Set(encoded)
	return encoded
}
