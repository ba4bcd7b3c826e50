package lock

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

const (
	// ExtensionName is the condition extension of lock addresses
	ExtensionName = "lock"

	vaultType = "vault"
)

// DeriveLockAddress returns the address holding the funds of the lock
// created by owner for the given unlock time, together with the
// condition authorizing it and the bump used.
func DeriveLockAddress(owner timelock.Address, unlockTime timelock.UnixTime) (timelock.Address, timelock.Condition, uint8, error) {
	return timelock.DeriveAddress(ExtensionName, vaultType, owner, unlockTime.Bytes())
}

// Condition rebuilds the signing authority of a stored lock from its
// bump. It fails if the result does not match the lock address.
func (l *Lock) Condition(addr timelock.Address) (timelock.Condition, error) {
	derived, cond, err := timelock.CreateDerivedAddress(ExtensionName, vaultType, l.Bump, l.Owner, l.UnlockTime.Bytes())
	if err != nil {
		return nil, err
	}
	if !derived.Equals(addr) {
		return nil, errors.Wrap(errors.ErrState, "lock does not derive to its address")
	}
	return cond, nil
}
