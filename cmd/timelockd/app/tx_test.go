package app

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/lock"
	"github.com/iov-one/timelock/x/sigs"
)

func TestTxGetMsg(t *testing.T) {
	withdraw := &lock.WithdrawNativeMsg{Metadata: &timelock.Metadata{Schema: 1}}
	send := &cash.SendMsg{Metadata: &timelock.Metadata{Schema: 1}}

	cases := map[string]struct {
		tx      *Tx
		wantMsg timelock.Msg
		wantErr *errors.Error
	}{
		"single message": {
			tx:      &Tx{WithdrawNativeMsg: withdraw},
			wantMsg: withdraw,
		},
		"no message": {
			tx:      &Tx{},
			wantErr: errors.ErrMsg,
		},
		"two messages": {
			tx:      &Tx{WithdrawNativeMsg: withdraw, SendMsg: send},
			wantErr: errors.ErrMsg,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := tc.tx.GetMsg()
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantMsg, msg)
			}
		})
	}
}

func TestTxSetMsg(t *testing.T) {
	sig := &sigs.StdSignature{Sequence: 4}
	tx := &Tx{Signatures: []*sigs.StdSignature{sig}, SendMsg: &cash.SendMsg{}}

	create := &lock.CreateTokenLockMsg{Metadata: &timelock.Metadata{Schema: 1}}
	assert.Nil(t, tx.SetMsg(create))
	assert.Nil(t, tx.SendMsg)
	assert.Equal(t, []*sigs.StdSignature{sig}, tx.Signatures)

	msg, err := tx.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, create, msg)

	err = tx.SetMsg(&weavetest.Msg{RoutePath: "foo/bar"})
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestTxSignBytes(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx := &Tx{CreateNativeLockMsg: &lock.CreateNativeLockMsg{
		Metadata: &timelock.Metadata{Schema: 1},
		Payer:    key.PublicKey().Address(),
		Amount:   10,
	}}
	before, err := tx.GetSignBytes()
	assert.Nil(t, err)

	sig, err := sigs.SignTx(key, tx, "test-chain", 0)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	after, err := tx.GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, len(tx.GetSignatures()))

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)
	got, err := decoded.(*Tx).GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, before, got)
	assert.Equal(t, int64(0), decoded.(*Tx).Signatures[0].Sequence)
}

func TestTxDecoderRejectsGarbage(t *testing.T) {
	_, err := TxDecoder([]byte{0xff, 0xff, 0xff})
	assert.IsErr(t, errors.ErrInput, err)
}
