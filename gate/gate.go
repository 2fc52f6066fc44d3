// Package gate implements the admin session gate: a two-state login/logout
// machine guarding write access to the site content.
//
// The gate is a UI convenience, not access control. The default credential
// is a fixed, publicly known pair (admin / 123456) checked without rate
// limiting or expiry. A deployment exposed to the internet must replace it
// with real authentication; HashedCredential only avoids keeping the secret
// in plain text.
package gate

import (
	"crypto/subtle"
	"errors"
	"maps"
)

// Errors returned by Gate.
var (
	ErrInvalidCredentials = errors.New("gate: invalid credentials")
	ErrNotAuthenticated   = errors.New("gate: not authenticated")
)

// State is the gate state.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Verifier accepts or rejects an identity/secret pair as a whole.
type Verifier interface {
	Verify(id, secret string) bool
}

// FixedCredential accepts exactly one plain-text pair.
type FixedCredential struct {
	ID     string
	Secret string
}

// DefaultCredential is the built-in admin pair.
var DefaultCredential = FixedCredential{ID: "admin", Secret: "123456"}

// Verify compares both fields in constant time.
func (f FixedCredential) Verify(id, secret string) bool {
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(f.ID))
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(f.Secret))
	return idOK&secretOK == 1
}

// Gate is one session's login state plus its staged, unsaved edits.
// A Gate is not safe for concurrent use; each request restores its own.
type Gate struct {
	verifier Verifier
	state    State
	pending  map[string]string
}

// New returns an anonymous gate checking credentials with v.
func New(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// Restore returns a gate in a previously saved state.
func Restore(v Verifier, s State) *Gate {
	return &Gate{verifier: v, state: s}
}

// State reports the current state.
func (g *Gate) State() State { return g.state }

// Authenticated reports whether writes are allowed.
func (g *Gate) Authenticated() bool { return g.state == Authenticated }

// Login moves the gate to Authenticated when id and secret match. On any
// other input it returns ErrInvalidCredentials and the state is unchanged.
func (g *Gate) Login(id, secret string) error {
	if g.verifier == nil || !g.verifier.Verify(id, secret) {
		return ErrInvalidCredentials
	}
	g.state = Authenticated
	return nil
}

// Logout returns to Anonymous and drops staged edits.
func (g *Gate) Logout() {
	g.state = Anonymous
	g.pending = nil
}

// Stage records an unsaved edit of the field named key.
func (g *Gate) Stage(key, value string) error {
	if !g.Authenticated() {
		return ErrNotAuthenticated
	}
	if g.pending == nil {
		g.pending = make(map[string]string)
	}
	g.pending[key] = value
	return nil
}

// Pending returns a copy of the staged edits.
func (g *Gate) Pending() map[string]string {
	return maps.Clone(g.pending)
}

// SaveAndClose hands the staged edits to commit as one unit. If commit
// succeeds the gate logs out; if it fails the gate stays authenticated with
// the edits still staged.
func (g *Gate) SaveAndClose(commit func(map[string]string) error) error {
	if !g.Authenticated() {
		return ErrNotAuthenticated
	}
	if len(g.pending) > 0 {
		if err := commit(g.Pending()); err != nil {
			return err
		}
	}
	g.Logout()
	return nil
}
