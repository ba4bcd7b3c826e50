package token

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
	"github.com/iov-one/timelock/x"
)

// Controller is the token ledger as seen by other extensions.
type Controller interface {
	// Asset returns the asset with the given id. ErrNotFound if missing.
	Asset(db timelock.ReadOnlyKVStore, id []byte) (*Asset, error)
	// Custody returns the custody account at addr. ErrNotFound if missing.
	Custody(db timelock.ReadOnlyKVStore, addr timelock.Address) (*Custody, error)
	// Open creates an empty custody account for the owner and asset.
	Open(db timelock.KVStore, owner timelock.Address, assetID []byte) (timelock.Address, error)
	// Transfer moves units between two custody accounts of the same
	// asset. The owner of src must be authenticated.
	Transfer(ctx timelock.Context, db timelock.KVStore, src, dest timelock.Address, amount uint64) error
	// Close removes an empty custody account. The owner must be
	// authenticated.
	Close(ctx timelock.Context, db timelock.KVStore, addr timelock.Address) error
}

// BaseController is the default implementation of Controller.
type BaseController struct {
	auth    x.Authenticator
	assets  AssetBucket
	custody CustodyBucket
}

var _ Controller = BaseController{}

// NewController returns a controller checking custody owners with auth.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		auth:    auth,
		assets:  NewAssetBucket(),
		custody: NewCustodyBucket(),
	}
}

func (c BaseController) Asset(db timelock.ReadOnlyKVStore, id []byte) (*Asset, error) {
	a, err := c.assets.GetAsset(db, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "asset %X", id)
	}
	return a, nil
}

func (c BaseController) Custody(db timelock.ReadOnlyKVStore, addr timelock.Address) (*Custody, error) {
	obj, err := c.loadCustody(db, addr)
	if err != nil {
		return nil, err
	}
	return obj.Value().(*Custody), nil
}

func (c BaseController) loadCustody(db timelock.ReadOnlyKVStore, addr timelock.Address) (orm.Object, error) {
	obj, err := c.custody.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "custody %s", addr)
	}
	return obj, nil
}

func (c BaseController) Open(db timelock.KVStore, owner timelock.Address, assetID []byte) (timelock.Address, error) {
	if _, err := c.Asset(db, assetID); err != nil {
		return nil, err
	}
	addr := CustodyAddress(owner, assetID)
	switch has, err := c.custody.Has(db, addr); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "custody %s", addr)
	}
	obj := orm.NewSimpleObj(addr, &Custody{
		Metadata: &timelock.Metadata{Schema: 1},
		Owner:    owner,
		Asset:    assetID,
	})
	if err := c.custody.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "save custody")
	}
	return addr, nil
}

func (c BaseController) Transfer(ctx timelock.Context, db timelock.KVStore, src, dest timelock.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	from, err := c.loadCustody(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	to, err := c.loadCustody(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	fc := from.Value().(*Custody)
	tc := to.Value().(*Custody)
	if !c.auth.HasAddress(ctx, fc.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "custody owner signature missing")
	}
	if !timelock.Address(tc.Asset).Equals(fc.Asset) {
		return errors.Wrap(errors.ErrInput, "custody accounts hold different assets")
	}
	if fc.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: have %d, need %d", fc.Balance, amount)
	}
	if tc.Balance+amount < tc.Balance {
		return errors.Wrap(errors.ErrOverflow, "custody balance")
	}
	fc.Balance -= amount
	tc.Balance += amount
	if err := c.custody.Save(db, from); err != nil {
		return errors.Wrap(err, "save source")
	}
	return errors.Wrap(c.custody.Save(db, to), "save destination")
}

func (c BaseController) Close(ctx timelock.Context, db timelock.KVStore, addr timelock.Address) error {
	obj, err := c.loadCustody(db, addr)
	if err != nil {
		return err
	}
	cust := obj.Value().(*Custody)
	if !c.auth.HasAddress(ctx, cust.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "custody owner signature missing")
	}
	if cust.Balance != 0 {
		return errors.Wrapf(errors.ErrState, "custody holds %d units", cust.Balance)
	}
	return c.custody.Delete(db, addr)
}

// Issue registers a new asset and credits the whole supply to the
// issuer custody account.
func (c BaseController) Issue(db timelock.KVStore, issuer timelock.Address, ticker string, supply uint64) ([]byte, error) {
	id := AssetID(issuer, ticker)
	switch has, err := c.assets.Has(db, id); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "asset %s", ticker)
	}
	asset := orm.NewSimpleObj(id, &Asset{
		Metadata: &timelock.Metadata{Schema: 1},
		Ticker:   ticker,
		Issuer:   issuer,
		Supply:   supply,
	})
	if err := c.assets.Save(db, asset); err != nil {
		return nil, errors.Wrap(err, "save asset")
	}
	obj := orm.NewSimpleObj(CustodyAddress(issuer, id), &Custody{
		Metadata: &timelock.Metadata{Schema: 1},
		Owner:    issuer,
		Asset:    id,
		Balance:  supply,
	})
	if err := c.custody.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "save custody")
	}
	return id, nil
}
