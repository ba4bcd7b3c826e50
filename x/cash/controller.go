package cash

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Controller is the native coin ledger as seen by other extensions.
type Controller interface {
	// Balance returns the balance of the address, zero for unknown ones.
	Balance(db timelock.ReadOnlyKVStore, addr timelock.Address) (uint64, error)
	// MoveCoins moves the given amount from src to dest.
	MoveCoins(db timelock.KVStore, src, dest timelock.Address, amount uint64) error
	// IssueCoins creates new coins at the destination.
	IssueCoins(db timelock.KVStore, dest timelock.Address, amount uint64) error
}

// BaseController is the default implementation of Controller.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default bucket
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db timelock.ReadOnlyKVStore, addr timelock.Address) (uint64, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return AsWallet(obj).Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db timelock.KVStore, src, dest timelock.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if err := AsWallet(sender).Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// read after the sender is saved, so src == dest is a no-op
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}
	return errors.Wrap(c.bucket.Save(db, recipient), "save recipient")
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db timelock.KVStore, dest timelock.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := AsWallet(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
