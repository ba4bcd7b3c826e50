package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/stretchr/testify/require"
)

// signedTx is a minimal SignedTx carrying raw message bytes.
type signedTx struct {
	weavetest.Tx
	raw  []byte
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func (s *signedTx) GetSignBytes() ([]byte, error) { return s.raw, nil }

func (s *signedTx) GetSignatures() []*StdSignature { return s.sigs }

func TestBuildSignBytes(t *testing.T) {
	cases := map[string]struct {
		chainID string
		seq     int64
		wantErr *errors.Error
	}{
		"valid":            {chainID: "test-chain", seq: 3},
		"negative":         {chainID: "test-chain", seq: -1, wantErr: ErrInvalidSequence},
		"invalid chain id": {chainID: "no", seq: 1, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := BuildSignBytes([]byte("payload"), tc.chainID, tc.seq)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, 64, len(bz))
			}
		})
	}

	a, err := BuildSignBytes([]byte("payload"), "test-chain", 1)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("payload"), "test-chain", 2)
	assert.Nil(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifySignatureSequence(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	key := weavetest.NewKey()
	tx := &signedTx{raw: []byte("lock it")}

	sig0, err := SignTx(key, tx, chainID, 0)
	assert.Nil(t, err)
	cond, err := VerifySignature(db, sig0, tx.raw, chainID)
	assert.Nil(t, err)
	assert.Equal(t, key.PublicKey().Condition(), cond)

	seq, err := NextSequence(db, key.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// replaying the same signature must fail
	_, err = VerifySignature(db, sig0, tx.raw, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	// signature for another chain does not verify
	other, err := SignTx(key, tx, "other-chain", 1)
	assert.Nil(t, err)
	_, err = VerifySignature(db, other, tx.raw, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	sig1, err := SignTx(key, tx, chainID, 1)
	assert.Nil(t, err)
	_, err = VerifySignature(db, sig1, tx.raw, chainID)
	assert.Nil(t, err)

	_, err = VerifySignature(db, &StdSignature{Pubkey: key.PublicKey()}, tx.raw, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestDecorator(t *testing.T) {
	const chainID = "test-chain"
	ctx := timelock.WithChainID(context.Background(), chainID)
	alice := weavetest.NewKey()
	bob := weavetest.NewKey()

	cases := map[string]struct {
		signers   []*crypto.PrivateKey
		decorator Decorator
		wantErr   *errors.Error
	}{
		"one signer":  {signers: []*crypto.PrivateKey{alice}, decorator: NewDecorator()},
		"two signers": {signers: []*crypto.PrivateKey{alice, bob}, decorator: NewDecorator()},
		"missing signatures": {
			decorator: NewDecorator(),
			wantErr:   errors.ErrUnauthorized,
		},
		"missing signatures allowed": {
			decorator: NewDecorator().AllowMissingSigs(),
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			tx := &signedTx{raw: []byte(testName)}
			for _, k := range tc.signers {
				sig, err := SignTx(k, tx, chainID, 0)
				assert.Nil(t, err)
				tx.sigs = append(tx.sigs, sig)
			}

			h := &authCapture{}
			_, err := tc.decorator.Deliver(ctx, db, tx, h)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, len(tc.signers), len(h.conds))
			for i, k := range tc.signers {
				assert.Equal(t, k.PublicKey().Condition(), h.conds[i])
			}
		})
	}
}

func TestUserDataRoundTrip(t *testing.T) {
	key := weavetest.NewKey()
	obj := NewUser(key.PublicKey())
	user := AsUser(obj)
	assert.Nil(t, user.CheckAndIncrementSequence(0))

	raw, err := user.Marshal()
	assert.Nil(t, err)
	var got UserData
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, int64(1), got.Sequence)
	assert.Equal(t, key.PublicKey().Ed25519, got.Pubkey.Ed25519)
	assert.Nil(t, got.Validate())
}

// authCapture records the conditions authenticated in the context.
type authCapture struct {
	conds []timelock.Condition
}

func (a *authCapture) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	a.conds = Authenticate{}.GetConditions(ctx)
	return &timelock.CheckResult{}, nil
}

func (a *authCapture) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	a.conds = Authenticate{}.GetConditions(ctx)
	return &timelock.DeliverResult{}, nil
}
