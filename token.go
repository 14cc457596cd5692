package loom

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Token is an injection identity independent of any Go type. Tokens
// address bindings that a type alone cannot distinguish, such as two
// string values with different meanings.
//
// Tokens created with the same non-empty name share one identity for
// the lifetime of the process. Tokens created without a name are
// always distinct, even from each other.
type Token struct {
	name string
	id   uuid.UUID
}

// tokens interns named tokens process-wide. Entries are never removed;
// the cache grows with the number of distinct names used.
var tokens sync.Map // name → Token

// NewToken returns the token interned under name. The first call for a
// given name creates the token; every later call returns the same
// identity. An empty name yields a fresh anonymous token.
//
// Example:
//
//	userTable := loom.NewToken("UserTable")
//	c.RegisterValue(userTable, "users")
func NewToken(name string) Token {
	if name == "" {
		return AnonymousToken()
	}

	if existing, ok := tokens.Load(name); ok {
		return existing.(Token)
	}

	created := Token{name: name, id: uuid.New()}
	existing, _ := tokens.LoadOrStore(name, created)

	return existing.(Token)
}

// AnonymousToken returns a token with a fresh identity. It is never
// interned and never equal to any other token, including other
// anonymous tokens.
func AnonymousToken() Token {
	return Token{id: uuid.New()}
}

// Name returns the interned name, or "" for anonymous tokens.
func (t Token) Name() string {
	return t.name
}

// Anonymous reports whether the token was created without a name.
func (t Token) Anonymous() bool {
	return t.name == ""
}

// String returns a diagnostic representation of the token.
func (t Token) String() string {
	if t.name == "" {
		return fmt.Sprintf("token(anonymous:%s)", t.id.String()[:8])
	}

	return fmt.Sprintf("token(%q)", t.name)
}
