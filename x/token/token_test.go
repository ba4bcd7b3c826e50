package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func issueTestAsset(t testing.TB, db timelock.KVStore, issuer timelock.Address, supply uint64) []byte {
	t.Helper()
	id, err := NewController(&weavetest.Auth{}).Issue(db, issuer, "GLD", supply)
	assert.Nil(t, err)
	return id
}

func TestAddressesAreDeterministic(t *testing.T) {
	issuer := weavetest.NewCondition().Address()
	owner := weavetest.NewCondition().Address()

	id := AssetID(issuer, "GLD")
	assert.Equal(t, id, AssetID(issuer, "GLD"))
	require.NotEqual(t, id, AssetID(issuer, "SLV"))
	assert.Nil(t, validateAssetID(id))

	c := CustodyAddress(owner, id)
	assert.Equal(t, c, CustodyAddress(owner, id))
	require.NotEqual(t, c, CustodyAddress(issuer, id))
	require.NotEqual(t, c, CustodyAddress(owner, AssetID(issuer, "SLV")))
}

func TestTransfer(t *testing.T) {
	issuer := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer   timelock.Condition
		amount   uint64
		otherID  bool
		wantErr  *errors.Error
		wantFrom uint64
		wantTo   uint64
	}{
		"transfer part": {
			signer: issuer, amount: 40,
			wantFrom: 60, wantTo: 40,
		},
		"transfer all": {
			signer: issuer, amount: 100,
			wantFrom: 0, wantTo: 100,
		},
		"not owner": {
			signer: bob, amount: 10,
			wantErr: errors.ErrUnauthorized, wantFrom: 100,
		},
		"insufficient": {
			signer: issuer, amount: 101,
			wantErr: errors.ErrAmount, wantFrom: 100,
		},
		"different asset": {
			signer: issuer, amount: 1, otherID: true,
			wantErr: errors.ErrInput, wantFrom: 100,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			id := issueTestAsset(t, db, issuer.Address(), 100)
			ctrl := NewController(&weavetest.Auth{Signer: tc.signer})

			var dest timelock.Address
			if tc.otherID {
				// issuing credits the supply to a custody account of bob
				other, err := ctrl.Issue(db, bob.Address(), "SLV", 5)
				assert.Nil(t, err)
				dest = CustodyAddress(bob.Address(), other)
			} else {
				d, err := ctrl.Open(db, bob.Address(), id)
				assert.Nil(t, err)
				dest = d
			}
			src := CustodyAddress(issuer.Address(), id)

			err := ctrl.Transfer(context.Background(), db, src, dest, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			from, err := ctrl.Custody(db, src)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantFrom, from.Balance)
			if tc.wantErr == nil {
				to, err := ctrl.Custody(db, dest)
				assert.Nil(t, err)
				assert.Equal(t, tc.wantTo, to.Balance)
			}
		})
	}
}

func TestOpenAndClose(t *testing.T) {
	db := store.MemStore()
	issuer := weavetest.NewCondition()
	owner := weavetest.NewCondition()
	id := issueTestAsset(t, db, issuer.Address(), 10)

	ctrl := NewController(&weavetest.Auth{Signer: owner})
	addr, err := ctrl.Open(db, owner.Address(), id)
	assert.Nil(t, err)
	assert.Equal(t, CustodyAddress(owner.Address(), id), addr)

	_, err = ctrl.Open(db, owner.Address(), id)
	assert.IsErr(t, errors.ErrDuplicate, err)

	_, err = ctrl.Open(db, owner.Address(), AssetID(issuer.Address(), "NOPE"))
	assert.IsErr(t, errors.ErrNotFound, err)

	// only the owner may close, and only an empty account
	intruder := NewController(&weavetest.Auth{Signer: issuer})
	assert.IsErr(t, errors.ErrUnauthorized, intruder.Close(context.Background(), db, addr))
	assert.IsErr(t, errors.ErrState, intruder.Close(context.Background(), db, CustodyAddress(issuer.Address(), id)))

	assert.Nil(t, ctrl.Close(context.Background(), db, addr))
	_, err = ctrl.Custody(db, addr)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestHandlers(t *testing.T) {
	db := store.MemStore()
	issuer := weavetest.NewCondition()
	bob := weavetest.NewCondition()
	auth := &weavetest.Auth{Signer: issuer}
	ctrl := NewController(auth)
	ctx := context.Background()

	issue := IssueAssetHandler{auth: auth, control: ctrl}
	res, err := issue.Deliver(ctx, db, &weavetest.Tx{Msg: &IssueAssetMsg{
		Metadata: &timelock.Metadata{Schema: 1},
		Issuer:   issuer.Address(),
		Ticker:   "GLD",
		Supply:   500,
	}})
	assert.Nil(t, err)
	id := res.Data
	assert.Equal(t, []byte(AssetID(issuer.Address(), "GLD")), id)

	transfer := TransferHandler{auth: auth, control: ctrl}
	msg := &TransferMsg{
		Metadata:  &timelock.Metadata{Schema: 1},
		Owner:     issuer.Address(),
		Recipient: bob.Address(),
		AssetID:   id,
		Amount:    120,
	}
	_, err = transfer.Check(ctx, db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)
	_, err = transfer.Deliver(ctx, db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)
	// second transfer reuses the recipient custody
	_, err = transfer.Deliver(ctx, db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)

	got, err := ctrl.Custody(db, CustodyAddress(bob.Address(), id))
	assert.Nil(t, err)
	assert.Equal(t, uint64(240), got.Balance)

	stolen := *msg
	stolen.Owner = bob.Address()
	stolen.Recipient = issuer.Address()
	_, err = transfer.Deliver(ctx, db, &weavetest.Tx{Msg: &stolen})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	owned, err := NewCustodyBucket().GetIndexed(db, "owner", bob.Address())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(owned))
}

func TestGenesis(t *testing.T) {
	issuer := weavetest.NewCondition().Address()
	holder := weavetest.NewCondition().Address()
	raw, err := json.Marshal([]GenesisAsset{{
		Issuer:  issuer,
		Ticker:  "DEV",
		Supply:  1000,
		Holders: []GenesisHolding{{Owner: holder, Amount: 250}},
	}})
	assert.Nil(t, err)

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(timelock.Options{"token": raw}, db))

	ctrl := NewController(&weavetest.Auth{})
	id := AssetID(issuer, "DEV")
	asset, err := ctrl.Asset(db, id)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1000), asset.Supply)

	c, err := ctrl.Custody(db, CustodyAddress(holder, id))
	assert.Nil(t, err)
	assert.Equal(t, uint64(250), c.Balance)
	c, err = ctrl.Custody(db, CustodyAddress(issuer, id))
	assert.Nil(t, err)
	assert.Equal(t, uint64(750), c.Balance)
}
