package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the native coin balance of a single address.
type Wallet struct {
	Metadata *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Balance  uint64             `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
}

type walletProto Wallet

func (m *walletProto) Reset()         { *m = walletProto{} }
func (m *walletProto) String() string { return proto.CompactTextString(m) }
func (*walletProto) ProtoMessage()    {}

func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletProto)(w))
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletProto)(w))
}

var _ orm.CloneableData = (*Wallet)(nil)

// Validate requires metadata to be present
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Metadata.Validate(), "metadata")
}

// Copy makes a new wallet with the same balance
func (w *Wallet) Copy() orm.CloneableData {
	cp := &Wallet{Balance: w.Balance}
	if w.Metadata != nil {
		cp.Metadata = &timelock.Metadata{Schema: w.Metadata.Schema}
	}
	return cp
}

// Add increases the balance, failing on overflow
func (w *Wallet) Add(amount uint64) error {
	sum := w.Balance + amount
	if sum < w.Balance {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.Balance = sum
	return nil
}

// Subtract decreases the balance, failing if it is not sufficient
func (w *Wallet) Subtract(amount uint64) error {
	if w.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: have %d, need %d", w.Balance, amount)
	}
	w.Balance -= amount
	return nil
}

// NewWallet creates an empty wallet object for this address
func NewWallet(addr timelock.Address) orm.Object {
	return WalletWith(addr, 0)
}

// WalletWith creates a wallet object holding the given balance
func WalletWith(addr timelock.Address, balance uint64) orm.Object {
	return orm.NewSimpleObj(addr, &Wallet{
		Metadata: &timelock.Metadata{Schema: 1},
		Balance:  balance,
	})
}

// AsWallet will safely type-cast any value from Bucket to a Wallet
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// GetOrCreate will return the object if found, or create one
// if not.
func (b Bucket) GetOrCreate(db timelock.KVStore, addr timelock.Address) (orm.Object, error) {
	obj, err := b.Get(db, addr)
	if err == nil && obj == nil {
		obj = NewWallet(addr)
	}
	return obj, err
}
