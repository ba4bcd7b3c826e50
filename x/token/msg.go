package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

const (
	pathIssueAssetMsg = "token/issue"
	pathTransferMsg   = "token/transfer"
)

var (
	_ timelock.Msg = (*IssueAssetMsg)(nil)
	_ timelock.Msg = (*TransferMsg)(nil)
)

// IssueAssetMsg creates a new asset. The whole supply is credited to the
// issuer custody account.
type IssueAssetMsg struct {
	Metadata *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Issuer   timelock.Address   `protobuf:"bytes,2,opt,name=issuer,proto3" json:"issuer,omitempty"`
	Ticker   string             `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Supply   uint64             `protobuf:"varint,4,opt,name=supply,proto3" json:"supply,omitempty"`
}

type issueAssetMsgProto IssueAssetMsg

func (m *issueAssetMsgProto) Reset()         { *m = issueAssetMsgProto{} }
func (m *issueAssetMsgProto) String() string { return proto.CompactTextString(m) }
func (*issueAssetMsgProto) ProtoMessage()    {}

func (m *IssueAssetMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*issueAssetMsgProto)(m))
}

func (m *IssueAssetMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*issueAssetMsgProto)(m))
}

func (m *IssueAssetMsg) Reset()         { *m = IssueAssetMsg{} }
func (m *IssueAssetMsg) String() string { return proto.CompactTextString((*issueAssetMsgProto)(m)) }
func (*IssueAssetMsg) ProtoMessage()    {}

func (IssueAssetMsg) Path() string {
	return pathIssueAssetMsg
}

func (m *IssueAssetMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Issuer.Validate(); err != nil {
		return errors.Wrap(err, "issuer")
	}
	if !isTicker(m.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker %q", m.Ticker)
	}
	if m.Supply == 0 {
		return errors.Wrap(errors.ErrAmount, "zero supply")
	}
	return nil
}

// TransferMsg moves asset units from the owner custody account to the
// recipient custody account, opening the latter when needed.
type TransferMsg struct {
	Metadata  *timelock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner     timelock.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Recipient timelock.Address   `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	AssetID   []byte             `protobuf:"bytes,4,opt,name=asset_id,json=assetId,proto3" json:"asset_id,omitempty"`
	Amount    uint64             `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

type transferMsgProto TransferMsg

func (m *transferMsgProto) Reset()         { *m = transferMsgProto{} }
func (m *transferMsgProto) String() string { return proto.CompactTextString(m) }
func (*transferMsgProto) ProtoMessage()    {}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgProto)(m))
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferMsgProto)(m))
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString((*transferMsgProto)(m)) }
func (*TransferMsg) ProtoMessage()    {}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := validateAssetID(m.AssetID); err != nil {
		return errors.Wrap(err, "asset id")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}
