package lock

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// AssetKind selects the transfer protocol of a lock.
type AssetKind uint8

const (
	AssetNative AssetKind = iota
	AssetToken
)

func (k AssetKind) String() string {
	switch k {
	case AssetNative:
		return "native"
	case AssetToken:
		return "token"
	}
	return "unknown"
}

// Asset is what a lock holds. It is either Native or Token.
type Asset interface {
	Kind() AssetKind
	String() string
	isAsset()
}

// Native is the coin of the cash ledger.
type Native struct{}

func (Native) Kind() AssetKind { return AssetNative }
func (Native) String() string  { return "native" }
func (Native) isAsset()        {}

// Token is an asset of the token ledger, held in custody accounts.
type Token struct {
	ID []byte
}

func (Token) Kind() AssetKind { return AssetToken }
func (t Token) String() string {
	return strings.ToUpper(hex.EncodeToString(t.ID))
}
func (Token) isAsset() {}

// sameAsset returns true if both describe the same asset.
func sameAsset(a, b Asset) bool {
	switch a := a.(type) {
	case Native:
		_, ok := b.(Native)
		return ok
	case Token:
		t, ok := b.(Token)
		return ok && timelock.Address(a.ID).Equals(t.ID)
	}
	return false
}

func validateAsset(a Asset) error {
	switch a := a.(type) {
	case Native:
		return nil
	case Token:
		return errors.Wrap(timelock.Address(a.ID).Validate(), "asset id")
	case nil:
		return errors.Wrap(errors.ErrEmpty, "asset")
	}
	return errors.WithType(errors.ErrType, a)
}

func copyAsset(a Asset) Asset {
	if t, ok := a.(Token); ok {
		return Token{ID: append([]byte(nil), t.ID...)}
	}
	return a
}
