package x

import (
	"github.com/iov-one/timelock"
)

// Authenticator extracts authentication info from the context. Handlers
// receive one on construction: signatures from x/sigs, and the authority
// of a lock address while it is being withdrawn.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled
	GetConditions(timelock.Context) []timelock.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(timelock.Context, timelock.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators, without
// duplicates
func (m MultiAuth) GetConditions(ctx timelock.Context) []timelock.Condition {
	var res []timelock.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasPerm(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

func hasPerm(perms []timelock.Condition, perm timelock.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}
