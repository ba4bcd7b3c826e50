package lock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

const (
	pathCreateNativeLockMsg = "lock/create_native"
	pathCreateTokenLockMsg  = "lock/create_token"
	pathWithdrawNativeMsg   = "lock/withdraw_native"
	pathWithdrawTokenMsg    = "lock/withdraw_token"
)

var (
	_ timelock.Msg = (*CreateNativeLockMsg)(nil)
	_ timelock.Msg = (*CreateTokenLockMsg)(nil)
	_ timelock.Msg = (*WithdrawNativeMsg)(nil)
	_ timelock.Msg = (*WithdrawTokenMsg)(nil)
)

// CreateNativeLockMsg locks native coins of the payer.
type CreateNativeLockMsg struct {
	Metadata    *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Payer       timelock.Address   `protobuf:"bytes,2,opt,name=payer,proto3" json:"payer,omitempty"`
	Beneficiary timelock.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	Amount      uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	UnlockTime  timelock.UnixTime  `protobuf:"varint,5,opt,name=unlock_time,json=unlockTime,proto3" json:"unlock_time,omitempty"`
	Description string             `protobuf:"bytes,6,opt,name=description,proto3" json:"description,omitempty"`
}

type createNativeLockMsgProto CreateNativeLockMsg

func (m *createNativeLockMsgProto) Reset()         { *m = createNativeLockMsgProto{} }
func (m *createNativeLockMsgProto) String() string { return proto.CompactTextString(m) }
func (*createNativeLockMsgProto) ProtoMessage()    {}

func (m *CreateNativeLockMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createNativeLockMsgProto)(m))
}

func (m *CreateNativeLockMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createNativeLockMsgProto)(m))
}

func (m *CreateNativeLockMsg) Reset() { *m = CreateNativeLockMsg{} }
func (m *CreateNativeLockMsg) String() string {
	return proto.CompactTextString((*createNativeLockMsgProto)(m))
}
func (*CreateNativeLockMsg) ProtoMessage() {}

func (CreateNativeLockMsg) Path() string {
	return pathCreateNativeLockMsg
}

// Validate checks the shape of the message. Amount, unlock time and
// description are checked by the handler.
func (m *CreateNativeLockMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	return errors.Wrap(m.Beneficiary.Validate(), "beneficiary")
}

// CreateTokenLockMsg locks units of a token asset held in the payer
// custody account.
type CreateTokenLockMsg struct {
	Metadata     *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Payer        timelock.Address   `protobuf:"bytes,2,opt,name=payer,proto3" json:"payer,omitempty"`
	Beneficiary  timelock.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	Amount       uint64             `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	UnlockTime   timelock.UnixTime  `protobuf:"varint,5,opt,name=unlock_time,json=unlockTime,proto3" json:"unlock_time,omitempty"`
	Description  string             `protobuf:"bytes,6,opt,name=description,proto3" json:"description,omitempty"`
	AssetID      []byte             `protobuf:"bytes,7,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	PayerCustody timelock.Address   `protobuf:"bytes,8,opt,name=payer_custody,json=payerCustody,proto3" json:"payer_custody,omitempty"`
	LockCustody  timelock.Address   `protobuf:"bytes,9,opt,name=lock_custody,json=lockCustody,proto3" json:"lock_custody,omitempty"`
}

type createTokenLockMsgProto CreateTokenLockMsg

func (m *createTokenLockMsgProto) Reset()         { *m = createTokenLockMsgProto{} }
func (m *createTokenLockMsgProto) String() string { return proto.CompactTextString(m) }
func (*createTokenLockMsgProto) ProtoMessage()    {}

func (m *CreateTokenLockMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createTokenLockMsgProto)(m))
}

func (m *CreateTokenLockMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createTokenLockMsgProto)(m))
}

func (m *CreateTokenLockMsg) Reset() { *m = CreateTokenLockMsg{} }
func (m *CreateTokenLockMsg) String() string {
	return proto.CompactTextString((*createTokenLockMsgProto)(m))
}
func (*CreateTokenLockMsg) ProtoMessage() {}

func (CreateTokenLockMsg) Path() string {
	return pathCreateTokenLockMsg
}

func (m *CreateTokenLockMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Payer.Validate(); err != nil {
		return errors.Wrap(err, "payer")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := timelock.Address(m.AssetID).Validate(); err != nil {
		return errors.Wrap(err, "asset id")
	}
	if err := m.PayerCustody.Validate(); err != nil {
		return errors.Wrap(err, "payer custody")
	}
	return errors.Wrap(m.LockCustody.Validate(), "lock custody")
}

// WithdrawNativeMsg releases a native lock to its beneficiary.
type WithdrawNativeMsg struct {
	Metadata    *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Lock        timelock.Address   `protobuf:"bytes,2,opt,name=lock,proto3" json:"lock,omitempty"`
	Beneficiary timelock.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
}

type withdrawNativeMsgProto WithdrawNativeMsg

func (m *withdrawNativeMsgProto) Reset()         { *m = withdrawNativeMsgProto{} }
func (m *withdrawNativeMsgProto) String() string { return proto.CompactTextString(m) }
func (*withdrawNativeMsgProto) ProtoMessage()    {}

func (m *WithdrawNativeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawNativeMsgProto)(m))
}

func (m *WithdrawNativeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawNativeMsgProto)(m))
}

func (m *WithdrawNativeMsg) Reset() { *m = WithdrawNativeMsg{} }
func (m *WithdrawNativeMsg) String() string {
	return proto.CompactTextString((*withdrawNativeMsgProto)(m))
}
func (*WithdrawNativeMsg) ProtoMessage() {}

func (WithdrawNativeMsg) Path() string {
	return pathWithdrawNativeMsg
}

func (m *WithdrawNativeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Lock.Validate(); err != nil {
		return errors.Wrap(err, "lock")
	}
	return errors.Wrap(m.Beneficiary.Validate(), "beneficiary")
}

// WithdrawTokenMsg releases a token lock to the beneficiary custody
// account.
type WithdrawTokenMsg struct {
	Metadata           *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Lock               timelock.Address   `protobuf:"bytes,2,opt,name=lock,proto3" json:"lock,omitempty"`
	Beneficiary        timelock.Address   `protobuf:"bytes,3,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	AssetID            []byte             `protobuf:"bytes,4,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	BeneficiaryCustody timelock.Address   `protobuf:"bytes,5,opt,name=beneficiary_custody,json=beneficiaryCustody,proto3" json:"beneficiary_custody,omitempty"`
	LockCustody        timelock.Address   `protobuf:"bytes,6,opt,name=lock_custody,json=lockCustody,proto3" json:"lock_custody,omitempty"`
}

type withdrawTokenMsgProto WithdrawTokenMsg

func (m *withdrawTokenMsgProto) Reset()         { *m = withdrawTokenMsgProto{} }
func (m *withdrawTokenMsgProto) String() string { return proto.CompactTextString(m) }
func (*withdrawTokenMsgProto) ProtoMessage()    {}

func (m *WithdrawTokenMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawTokenMsgProto)(m))
}

func (m *WithdrawTokenMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawTokenMsgProto)(m))
}

func (m *WithdrawTokenMsg) Reset() { *m = WithdrawTokenMsg{} }
func (m *WithdrawTokenMsg) String() string {
	return proto.CompactTextString((*withdrawTokenMsgProto)(m))
}
func (*WithdrawTokenMsg) ProtoMessage() {}

func (WithdrawTokenMsg) Path() string {
	return pathWithdrawTokenMsg
}

func (m *WithdrawTokenMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Lock.Validate(); err != nil {
		return errors.Wrap(err, "lock")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := timelock.Address(m.AssetID).Validate(); err != nil {
		return errors.Wrap(err, "asset id")
	}
	if err := m.BeneficiaryCustody.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary custody")
	}
	return errors.Wrap(m.LockCustody.Validate(), "lock custody")
}
