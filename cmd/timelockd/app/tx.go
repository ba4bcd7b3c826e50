package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/lock"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/token"
)

// Tx carries the signatures and exactly one message.
type Tx struct {
	Signatures          []*sigs.StdSignature      `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	SendMsg             *cash.SendMsg             `protobuf:"bytes,2,opt,name=send_msg,json=sendMsg,proto3" json:"send_msg,omitempty"`
	IssueAssetMsg       *token.IssueAssetMsg      `protobuf:"bytes,3,opt,name=issue_asset_msg,json=issueAssetMsg,proto3" json:"issue_asset_msg,omitempty"`
	TransferMsg         *token.TransferMsg        `protobuf:"bytes,4,opt,name=transfer_msg,json=transferMsg,proto3" json:"transfer_msg,omitempty"`
	CreateNativeLockMsg *lock.CreateNativeLockMsg `protobuf:"bytes,5,opt,name=create_native_lock_msg,json=createNativeLockMsg,proto3" json:"create_native_lock_msg,omitempty"`
	CreateTokenLockMsg  *lock.CreateTokenLockMsg  `protobuf:"bytes,6,opt,name=create_token_lock_msg,json=createTokenLockMsg,proto3" json:"create_token_lock_msg,omitempty"`
	WithdrawNativeMsg   *lock.WithdrawNativeMsg   `protobuf:"bytes,7,opt,name=withdraw_native_msg,json=withdrawNativeMsg,proto3" json:"withdraw_native_msg,omitempty"`
	WithdrawTokenMsg    *lock.WithdrawTokenMsg    `protobuf:"bytes,8,opt,name=withdraw_token_msg,json=withdrawTokenMsg,proto3" json:"withdraw_token_msg,omitempty"`
}

type txProto Tx

func (m *txProto) Reset()         { *m = txProto{} }
func (m *txProto) String() string { return proto.CompactTextString(m) }
func (*txProto) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txProto)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txProto)(tx))
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (timelock.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ timelock.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (timelock.Msg, error) {
	var msgs []timelock.Msg
	if tx.SendMsg != nil {
		msgs = append(msgs, tx.SendMsg)
	}
	if tx.IssueAssetMsg != nil {
		msgs = append(msgs, tx.IssueAssetMsg)
	}
	if tx.TransferMsg != nil {
		msgs = append(msgs, tx.TransferMsg)
	}
	if tx.CreateNativeLockMsg != nil {
		msgs = append(msgs, tx.CreateNativeLockMsg)
	}
	if tx.CreateTokenLockMsg != nil {
		msgs = append(msgs, tx.CreateTokenLockMsg)
	}
	if tx.WithdrawNativeMsg != nil {
		msgs = append(msgs, tx.WithdrawNativeMsg)
	}
	if tx.WithdrawTokenMsg != nil {
		msgs = append(msgs, tx.WithdrawTokenMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "transaction without a message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction with %d messages", len(msgs))
	}
}

// SetMsg places the message in its field. Any previously set message is
// removed.
func (tx *Tx) SetMsg(msg timelock.Msg) error {
	signatures := tx.Signatures
	*tx = Tx{Signatures: signatures}
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.SendMsg = m
	case *token.IssueAssetMsg:
		tx.IssueAssetMsg = m
	case *token.TransferMsg:
		tx.TransferMsg = m
	case *lock.CreateNativeLockMsg:
		tx.CreateNativeLockMsg = m
	case *lock.CreateTokenLockMsg:
		tx.CreateTokenLockMsg = m
	case *lock.WithdrawNativeMsg:
		tx.WithdrawNativeMsg = m
	case *lock.WithdrawTokenMsg:
		tx.WithdrawTokenMsg = m
	default:
		return errors.WithType(errors.ErrMsg, msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign, the transaction without
// its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = signatures
	return bz, err
}
