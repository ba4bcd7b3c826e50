package token

import (
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

var isTicker = regexp.MustCompile(`^[A-Z]{3,6}$`).MatchString

// Asset describes a token issued on this chain.
type Asset struct {
	Metadata *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Ticker   string             `protobuf:"bytes,2,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Issuer   timelock.Address   `protobuf:"bytes,3,opt,name=issuer,proto3" json:"issuer,omitempty"`
	Supply   uint64             `protobuf:"varint,4,opt,name=supply,proto3" json:"supply,omitempty"`
}

type assetProto Asset

func (m *assetProto) Reset()         { *m = assetProto{} }
func (m *assetProto) String() string { return proto.CompactTextString(m) }
func (*assetProto) ProtoMessage()    {}

func (a *Asset) Marshal() ([]byte, error) {
	return proto.Marshal((*assetProto)(a))
}

func (a *Asset) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*assetProto)(a))
}

var _ orm.CloneableData = (*Asset)(nil)

func (a *Asset) Validate() error {
	if err := a.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if !isTicker(a.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker %q", a.Ticker)
	}
	if err := a.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	if a.Supply == 0 {
		return errors.Wrap(errors.ErrAmount, "zero supply")
	}
	return nil
}

func (a *Asset) Copy() orm.CloneableData {
	cp := *a
	if a.Metadata != nil {
		cp.Metadata = &timelock.Metadata{Schema: a.Metadata.Schema}
	}
	cp.Issuer = append(timelock.Address(nil), a.Issuer...)
	return &cp
}

// Custody holds the units of one asset owned by one address.
type Custody struct {
	Metadata *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    timelock.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Asset    []byte             `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset,omitempty"`
	Balance  uint64             `protobuf:"varint,4,opt,name=balance,proto3" json:"balance,omitempty"`
}

type custodyProto Custody

func (m *custodyProto) Reset()         { *m = custodyProto{} }
func (m *custodyProto) String() string { return proto.CompactTextString(m) }
func (*custodyProto) ProtoMessage()    {}

func (c *Custody) Marshal() ([]byte, error) {
	return proto.Marshal((*custodyProto)(c))
}

func (c *Custody) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*custodyProto)(c))
}

var _ orm.CloneableData = (*Custody)(nil)

func (c *Custody) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return errors.Wrap(validateAssetID(c.Asset), "asset")
}

func (c *Custody) Copy() orm.CloneableData {
	cp := *c
	if c.Metadata != nil {
		cp.Metadata = &timelock.Metadata{Schema: c.Metadata.Schema}
	}
	cp.Owner = append(timelock.Address(nil), c.Owner...)
	cp.Asset = append([]byte(nil), c.Asset...)
	return &cp
}

const (
	assetBucketName   = "asset"
	custodyBucketName = "custody"
)

// AssetBucket stores assets by their id
type AssetBucket struct {
	orm.Bucket
}

func NewAssetBucket() AssetBucket {
	return AssetBucket{
		Bucket: orm.NewBucket(assetBucketName, orm.NewSimpleObj(nil, new(Asset))),
	}
}

// GetAsset returns the asset with the given id or nil.
func (b AssetBucket) GetAsset(db timelock.ReadOnlyKVStore, id []byte) (*Asset, error) {
	obj, err := b.Get(db, id)
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*Asset), nil
}

// CustodyBucket stores custody accounts by their derived address
type CustodyBucket struct {
	orm.Bucket
}

func NewCustodyBucket() CustodyBucket {
	b := orm.NewBucket(custodyBucketName, orm.NewSimpleObj(nil, new(Custody))).
		WithIndex("owner", custodyOwner, false)
	return CustodyBucket{Bucket: b}
}

func custodyOwner(obj orm.Object) ([]byte, error) {
	c, ok := obj.Value().(*Custody)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj.Value())
	}
	return c.Owner, nil
}

