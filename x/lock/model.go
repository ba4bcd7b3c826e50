package lock

import (
	"bytes"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// BucketName is where locks are stored
const BucketName = "lock"

// Lock is a deposit held until UnlockTime for the Beneficiary.
type Lock struct {
	Owner       timelock.Address
	Beneficiary timelock.Address
	Asset       Asset
	Amount      uint64
	UnlockTime  timelock.UnixTime
	Description string
	Spent       bool
	Bump        uint8

	// capacity is the size of the description area. It is fixed when
	// the lock is created, so the record never changes size.
	capacity int
}

var _ orm.CloneableData = (*Lock)(nil)

// NewLock returns a lock with a description area of the given capacity.
func NewLock(capacity int) *Lock {
	return &Lock{capacity: capacity}
}

// Capacity returns the size of the description area.
func (l *Lock) Capacity() int {
	if l.capacity == 0 {
		return DefaultMaxDescriptionLength
	}
	return l.capacity
}

func (l *Lock) Validate() error {
	if err := l.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := l.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := validateAsset(l.Asset); err != nil {
		return err
	}
	if l.Amount == 0 {
		return errors.Wrap(errors.ErrModel, "zero amount")
	}
	if err := l.UnlockTime.Validate(); err != nil {
		return errors.Wrap(err, "unlock time")
	}
	if len(l.Description) > l.Capacity() {
		return errors.Wrapf(ErrInvalidDescription, "longer than %d", l.Capacity())
	}
	return nil
}

func (l *Lock) Copy() orm.CloneableData {
	cp := *l
	cp.Owner = append(timelock.Address(nil), l.Owner...)
	cp.Beneficiary = append(timelock.Address(nil), l.Beneficiary...)
	cp.Asset = copyAsset(l.Asset)
	return &cp
}

// Marshal writes the fixed size record.
func (l *Lock) Marshal() ([]byte, error) {
	if len(l.Owner) != keySize || len(l.Beneficiary) != keySize {
		return nil, errors.Wrap(errors.ErrModel, "identity size")
	}
	capacity := l.Capacity()
	if len(l.Description) > capacity {
		return nil, errors.Wrapf(ErrInvalidDescription, "longer than %d", capacity)
	}

	raw := make([]byte, RecordSize(capacity))
	var offset int
	putBytes(raw, lockDiscriminator, &offset)
	putKey(raw, l.Owner, &offset)
	putKey(raw, l.Beneficiary, &offset)
	switch a := l.Asset.(type) {
	case Native:
		putUint8(raw, 0, &offset)
		offset += keySize
	case Token:
		if len(a.ID) != keySize {
			return nil, errors.Wrap(errors.ErrModel, "asset id size")
		}
		putUint8(raw, 1, &offset)
		putKey(raw, a.ID, &offset)
	default:
		return nil, errors.WithType(errors.ErrModel, l.Asset)
	}
	putUint64(raw, l.Amount, &offset)
	putUint64(raw, uint64(l.UnlockTime), &offset)
	putUint32(raw, uint32(len(l.Description)), &offset)
	putBytes(raw, []byte(l.Description), &offset)
	offset += capacity - len(l.Description)
	var spent uint8
	if l.Spent {
		spent = 1
	}
	putUint8(raw, spent, &offset)
	putUint8(raw, l.Bump, &offset)
	return raw, nil
}

// Unmarshal reads a record written by Marshal. The description capacity
// is recovered from the record size.
func (l *Lock) Unmarshal(raw []byte) error {
	if len(raw) < recordOverhead {
		return errors.Wrapf(errors.ErrModel, "record too short: %d", len(raw))
	}
	if !bytes.Equal(raw[:discriminatorSize], lockDiscriminator) {
		return errors.Wrap(errors.ErrModel, "not a lock record")
	}
	capacity := len(raw) - recordOverhead

	out := Lock{capacity: capacity}
	offset := discriminatorSize
	var (
		owner, benef, assetID, desc []byte
		flag, spent                 uint8
		amount, unlock              uint64
		descLen                     uint32
	)
	getKey(raw, &owner, &offset)
	getKey(raw, &benef, &offset)
	getUint8(raw, &flag, &offset)
	getKey(raw, &assetID, &offset)
	getUint64(raw, &amount, &offset)
	getUint64(raw, &unlock, &offset)
	getUint32(raw, &descLen, &offset)
	if int(descLen) > capacity {
		return errors.Wrapf(errors.ErrModel, "description length %d exceeds capacity %d", descLen, capacity)
	}
	getBytes(raw, &desc, int(descLen), &offset)
	offset += capacity - int(descLen)
	getUint8(raw, &spent, &offset)
	getUint8(raw, &out.Bump, &offset)

	switch flag {
	case 0:
		out.Asset = Native{}
	case 1:
		out.Asset = Token{ID: assetID}
	default:
		return errors.Wrapf(errors.ErrModel, "invalid asset flag %d", flag)
	}
	if spent > 1 {
		return errors.Wrapf(errors.ErrModel, "invalid spent flag %d", spent)
	}
	out.Owner = owner
	out.Beneficiary = benef
	out.Amount = amount
	out.UnlockTime = timelock.UnixTime(unlock)
	out.Description = string(desc)
	out.Spent = spent == 1
	*l = out
	return nil
}

// Bucket stores locks by their derived address, indexed by owner and
// beneficiary.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns the lock bucket
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, NewLock(0))).
		WithIndex("owner", ownerIndex, false).
		WithIndex("beneficiary", beneficiaryIndex, false)
	return Bucket{Bucket: b}
}

// GetLock returns the lock stored at the address or nil.
func (b Bucket) GetLock(db timelock.ReadOnlyKVStore, addr timelock.Address) (*Lock, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj == nil {
		return nil, err
	}
	return asLock(obj)
}

// Put saves the lock under its address.
func (b Bucket) Put(db timelock.KVStore, addr timelock.Address, l *Lock) error {
	return b.Save(db, orm.NewSimpleObj(addr, l))
}

func asLock(obj orm.Object) (*Lock, error) {
	l, ok := obj.Value().(*Lock)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return l, nil
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	l, err := asLock(obj)
	if err != nil {
		return nil, err
	}
	return l.Owner, nil
}

func beneficiaryIndex(obj orm.Object) ([]byte, error) {
	l, err := asLock(obj)
	if err != nil {
		return nil, err
	}
	return l.Beneficiary, nil
}
