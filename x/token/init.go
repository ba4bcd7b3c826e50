package token

import (
	"context"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

const optKey = "token"

// GenesisAsset is an asset created at genesis. Holders receive their
// balance from the issuer supply.
type GenesisAsset struct {
	Issuer  timelock.Address `json:"issuer"`
	Ticker  string           `json:"ticker"`
	Supply  uint64           `json:"supply"`
	Holders []GenesisHolding `json:"holders"`
}

// GenesisHolding credits Amount units of the asset to Owner.
type GenesisHolding struct {
	Owner  timelock.Address `json:"owner"`
	Amount uint64           `json:"amount"`
}

// Initializer creates the assets declared in the genesis file.
type Initializer struct{}

var _ timelock.Initializer = Initializer{}

func (Initializer) FromGenesis(opts timelock.Options, db timelock.KVStore) error {
	var assets []GenesisAsset
	if err := opts.ReadOptions(optKey, &assets); err != nil {
		return err
	}
	for i, a := range assets {
		if err := a.Issuer.Validate(); err != nil {
			return errors.Wrapf(err, "asset %d issuer", i)
		}
		// The issuer authority is implied at genesis.
		control := NewController(genesisAuth{issuer: a.Issuer})
		id, err := control.Issue(db, a.Issuer, a.Ticker, a.Supply)
		if err != nil {
			return errors.Wrapf(err, "asset %d", i)
		}
		src := CustodyAddress(a.Issuer, id)
		for j, h := range a.Holders {
			dest := CustodyAddress(h.Owner, id)
			if has, err := control.custody.Has(db, dest); err != nil {
				return err
			} else if !has {
				if _, err := control.Open(db, h.Owner, id); err != nil {
					return errors.Wrapf(err, "asset %d holder %d", i, j)
				}
			}
			if err := control.Transfer(context.Background(), db, src, dest, h.Amount); err != nil {
				return errors.Wrapf(err, "asset %d holder %d", i, j)
			}
		}
	}
	return nil
}

type genesisAuth struct {
	issuer timelock.Address
}

func (a genesisAuth) GetConditions(timelock.Context) []timelock.Condition {
	return nil
}

func (a genesisAuth) HasAddress(_ timelock.Context, addr timelock.Address) bool {
	return a.issuer.Equals(addr)
}
