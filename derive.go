package timelock

import (
	"bytes"

	"filippo.io/edwards25519"
	"github.com/iov-one/timelock/errors"
)

// DeriveAddress computes a program owned address from the extension name,
// the condition type and any number of seeds. The condition data is the
// concatenation of all seeds followed by a single bump byte. Bumps are tried
// from 255 down to 0 and the first one producing an address that is not a
// valid ed25519 point is returned. An address off the curve cannot have a
// private key, so only the returned condition can authorize it.
//
// The same input always yields the same address, bump and condition.
func DeriveAddress(ext, typ string, seeds ...[]byte) (Address, Condition, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, cond, err := CreateDerivedAddress(ext, typ, uint8(bump), seeds...)
		if err == nil {
			return addr, cond, uint8(bump), nil
		}
		if !errors.ErrState.Is(err) {
			return nil, nil, 0, err
		}
	}
	return nil, nil, 0, errors.Wrap(errors.ErrState, "unable to find a viable bump")
}

// CreateDerivedAddress rebuilds a derived address from a known bump. ErrState
// is returned if the resulting address lies on the ed25519 curve.
func CreateDerivedAddress(ext, typ string, bump uint8, seeds ...[]byte) (Address, Condition, error) {
	data := append(bytes.Join(seeds, nil), bump)
	cond := NewCondition(ext, typ, data)
	if err := cond.Validate(); err != nil {
		return nil, nil, err
	}
	addr := cond.Address()
	if IsOnCurve(addr) {
		return nil, nil, errors.Wrapf(errors.ErrState, "bump %d leads to an on curve address", bump)
	}
	return addr, cond, nil
}

// IsOnCurve returns true if the given 32 bytes decode as a valid ed25519
// point, which means it could be a public key.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
