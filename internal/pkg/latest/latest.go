// Package latest tracks which of several in-flight requests is authoritative.
//
// Every Issue supersedes all earlier tokens. A result is applied only when its
// token is still Current at resolution time; anything older is a stale response.
package latest

import "sync/atomic"

// Token identifies one issued request.
type Token uint64

// Tracker hands out monotonically increasing tokens.
// The zero value is ready to use and has no current token.
type Tracker struct {
	seq atomic.Uint64
}

// Issue returns a new token that supersedes every earlier one.
func (t *Tracker) Issue() Token {
	return Token(t.seq.Add(1))
}

// Current reports whether tok is the most recently issued token.
func (t *Tracker) Current(tok Token) bool {
	return tok != 0 && uint64(tok) == t.seq.Load()
}
