// Package apikey generates blog API keys and the bcrypt hashes the server
// stores for them.
package apikey

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// KeyBytes is the amount of entropy in a generated key.
	KeyBytes = 32

	DefaultName        = "blog_publisher"
	DefaultDescription = "API key for blog post publishing from the publish CLI"
	DefaultCost        = bcrypt.DefaultCost
)

// ErrCostInvalid is returned for a bcrypt cost outside the supported range.
var ErrCostInvalid = fmt.Errorf("apikey: cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)

// Credential is a freshly generated key with its stored form.
type Credential struct {
	Key         string
	Hash        string
	Name        string
	Description string
}

// Generator creates credentials. The zero value reads from crypto/rand and
// uses the default bcrypt cost.
type Generator struct {
	Random io.Reader
	Cost   int
}

// Generate creates a new key and hashes it.
func (g Generator) Generate(name, description string) (*Credential, error) {
	cost := g.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, ErrCostInvalid
	}

	key, err := NewKey(g.Random)
	if err != nil {
		return nil, err
	}
	hash, err := Hash(key, cost)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultDescription
	}
	return &Credential{Key: key, Hash: hash, Name: name, Description: description}, nil
}

// NewKey returns KeyBytes random bytes encoded as unpadded base64url.
func NewKey(random io.Reader) (string, error) {
	if random == nil {
		random = rand.Reader
	}
	buf := make([]byte, KeyBytes)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", fmt.Errorf("apikey: read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash returns the bcrypt hash of key, compatible with PHP password_verify.
func Hash(key string, cost int) (string, error) {
	if key == "" {
		return "", errors.New("apikey: key is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("apikey: hash key: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether key matches hash.
func Verify(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// EnvLine renders the .env assignment for the key.
func (c *Credential) EnvLine() string {
	return "BLOG_API_KEY=" + c.Key
}

// InsertSQL renders the statement that registers the hash in api_keys.
func (c *Credential) InsertSQL() string {
	return fmt.Sprintf(`INSERT INTO api_keys (key_name, key_hash, description, is_active)
VALUES (
    '%s',
    '%s',
    '%s',
    TRUE
);`, quoteSQL(c.Name), quoteSQL(c.Hash), quoteSQL(c.Description))
}

func quoteSQL(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
