package app

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/app"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/lock"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

const chainID = "test-net-22"

type account struct {
	pk *crypto.PrivateKey
}

func newAccount() *account {
	return &account{pk: crypto.GenPrivKeyEd25519()}
}

func (a *account) address() timelock.Address {
	return a.pk.PublicKey().Address()
}

// testChain drives a BaseApp the way tendermint does, one block at a time.
type testChain struct {
	t      *testing.T
	app    app.BaseApp
	height int64
	now    time.Time
}

func newTestChain(t *testing.T, alice, carol *account) *testChain {
	t.Helper()

	a, err := Application(Name, Stack(), TxDecoder, "", true)
	require.NoError(t, err)
	a.WithInit(Initializers())

	appState, err := json.Marshal(map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: alice.address(), Balance: 5000},
		},
		"token": []token.GenesisAsset{
			{Issuer: alice.address(), Ticker: "GLD", Supply: 1000},
			{Issuer: carol.address(), Ticker: "SLV", Supply: 1000},
		},
		"conf": map[string]interface{}{
			"lock": lock.Configuration{
				Metadata:             &timelock.Metadata{Schema: 1},
				MaxDescriptionLength: 100,
			},
		},
	})
	require.NoError(t, err)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: appState})

	c := &testChain{t: t, app: a, now: time.Unix(1570000000, 0).UTC()}
	c.begin(0)
	return c
}

// begin opens the next block, d after the genesis time.
func (c *testChain) begin(d time.Duration) {
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: c.height, Time: c.now.Add(d)},
	})
}

func (c *testChain) commit() {
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
}

// signedTx wraps msg in a transaction signed by signer with its current
// sequence.
func (c *testChain) signedTx(signer *account, msg timelock.Msg) []byte {
	c.t.Helper()

	tx := &Tx{}
	require.NoError(c.t, tx.SetMsg(msg))
	seq, err := sigs.NextSequence(c.app.DeliverStore(), signer.pk.PublicKey())
	require.NoError(c.t, err)
	sig, err := sigs.SignTx(signer.pk, tx, chainID, seq)
	require.NoError(c.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	raw, err := tx.Marshal()
	require.NoError(c.t, err)
	return raw
}

func (c *testChain) deliver(signer *account, msg timelock.Msg) abci.ResponseDeliverTx {
	c.t.Helper()
	return c.app.DeliverTx(c.signedTx(signer, msg))
}

func (c *testChain) query(path string, data []byte) abci.ResponseQuery {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.EqualValues(c.t, 0, res.Code, res.Log)
	return res
}

func (c *testChain) balance(addr timelock.Address) uint64 {
	c.t.Helper()
	var w cash.Wallet
	require.NoError(c.t, app.UnmarshalOneResult(c.query("/wallets", addr).Value, &w))
	return w.Balance
}

func (c *testChain) custody(addr timelock.Address) uint64 {
	c.t.Helper()
	var cu token.Custody
	require.NoError(c.t, app.UnmarshalOneResult(c.query("/custody", addr).Value, &cu))
	return cu.Balance
}

// lockRecord returns the committed lock at addr, or nil.
func (c *testChain) lockRecord(addr timelock.Address) *lock.Lock {
	c.t.Helper()
	res := c.query("/locks", addr)
	var keys, values app.ResultSet
	require.NoError(c.t, keys.Unmarshal(res.Key))
	require.NoError(c.t, values.Unmarshal(res.Value))
	models, err := app.JoinResults(&keys, &values)
	require.NoError(c.t, err)
	if len(models) == 0 {
		return nil
	}
	require.Equal(c.t, lock.NewBucket().DBKey(addr), models[0].Key)
	var l lock.Lock
	require.NoError(c.t, l.Unmarshal(models[0].Value))
	return &l
}

func tagValue(tags []common.KVPair, key string) string {
	for _, t := range tags {
		if string(t.Key) == key {
			return string(t.Value)
		}
	}
	return ""
}

func assertCode(t *testing.T, want *errors.Error, res abci.ResponseDeliverTx) {
	t.Helper()
	code, _ := errors.ABCIInfo(want, false)
	assert.Equal(t, code, res.Code, res.Log)
}

func TestNativeLockLifecycle(t *testing.T) {
	alice, bob, carol := newAccount(), newAccount(), newAccount()
	c := newTestChain(t, alice, carol)

	unlock := timelock.AsUnixTime(c.now.Add(time.Hour))
	lockAddr, _, _, err := lock.DeriveLockAddress(alice.address(), unlock)
	require.NoError(t, err)

	res := c.deliver(alice, &lock.CreateNativeLockMsg{
		Metadata:    &timelock.Metadata{Schema: 1},
		Payer:       alice.address(),
		Beneficiary: bob.address(),
		Amount:      1000,
		UnlockTime:  unlock,
		Description: "gift",
	})
	require.EqualValues(t, 0, res.Code, res.Log)
	assert.Equal(t, []byte(lockAddr), res.Data)
	assert.Equal(t, lock.EventFundsLocked, tagValue(res.Tags, lock.EventKey))
	assert.Equal(t, "lock/create_native", tagValue(res.Tags, "path"))
	c.commit()

	assert.EqualValues(t, 4000, c.balance(alice.address()))
	assert.EqualValues(t, 1000, c.balance(lockAddr))
	l := c.lockRecord(lockAddr)
	require.NotNil(t, l)
	assert.EqualValues(t, 1000, l.Amount)
	assert.Equal(t, bob.address(), l.Beneficiary)
	assert.Equal(t, "gift", l.Description)

	withdraw := &lock.WithdrawNativeMsg{
		Metadata:    &timelock.Metadata{Schema: 1},
		Lock:        lockAddr,
		Beneficiary: bob.address(),
	}

	c.begin(30 * time.Minute)
	assertCode(t, lock.ErrFundsLocked, c.deliver(bob, withdraw))
	assertCode(t, errors.ErrUnauthorized, c.deliver(alice, withdraw))
	c.commit()

	c.begin(time.Hour)
	res = c.deliver(bob, withdraw)
	require.EqualValues(t, 0, res.Code, res.Log)
	assert.Equal(t, lock.EventFundsWithdrawn, tagValue(res.Tags, lock.EventKey))
	assert.Equal(t, "1000", tagValue(res.Tags, "amount"))
	assertCode(t, lock.ErrDepositNotFound, c.deliver(bob, withdraw))
	c.commit()

	assert.EqualValues(t, 1000, c.balance(bob.address()))
	assert.EqualValues(t, 0, c.balance(lockAddr))
	assert.Nil(t, c.lockRecord(lockAddr))
}

func TestTokenLockRejectsForeignAsset(t *testing.T) {
	alice, bob, carol := newAccount(), newAccount(), newAccount()
	c := newTestChain(t, alice, carol)

	gold := token.AssetID(alice.address(), "GLD")
	silver := token.AssetID(carol.address(), "SLV")
	unlock := timelock.AsUnixTime(c.now.Add(time.Hour))
	lockAddr, _, _, err := lock.DeriveLockAddress(alice.address(), unlock)
	require.NoError(t, err)

	res := c.deliver(alice, &lock.CreateTokenLockMsg{
		Metadata:     &timelock.Metadata{Schema: 1},
		Payer:        alice.address(),
		Beneficiary:  bob.address(),
		Amount:       100,
		UnlockTime:   unlock,
		Description:  "vesting",
		AssetID:      gold,
		PayerCustody: token.CustodyAddress(alice.address(), gold),
		LockCustody:  token.CustodyAddress(lockAddr, gold),
	})
	require.EqualValues(t, 0, res.Code, res.Log)
	c.commit()

	assert.EqualValues(t, 900, c.custody(token.CustodyAddress(alice.address(), gold)))
	assert.EqualValues(t, 100, c.custody(token.CustodyAddress(lockAddr, gold)))

	withdraw := func(asset []byte) *lock.WithdrawTokenMsg {
		return &lock.WithdrawTokenMsg{
			Metadata:           &timelock.Metadata{Schema: 1},
			Lock:               lockAddr,
			Beneficiary:        bob.address(),
			AssetID:            asset,
			BeneficiaryCustody: token.CustodyAddress(bob.address(), asset),
			LockCustody:        token.CustodyAddress(lockAddr, asset),
		}
	}

	c.begin(2 * time.Hour)
	assertCode(t, errors.ErrUnauthorized, c.deliver(bob, withdraw(silver)))
	assertCode(t, lock.ErrFundsLocked, c.deliver(bob, &lock.WithdrawNativeMsg{
		Metadata:    &timelock.Metadata{Schema: 1},
		Lock:        lockAddr,
		Beneficiary: bob.address(),
	}))
	res = c.deliver(bob, withdraw(gold))
	require.EqualValues(t, 0, res.Code, res.Log)
	c.commit()

	assert.EqualValues(t, 100, c.custody(token.CustodyAddress(bob.address(), gold)))
	assert.EqualValues(t, 1000, c.custody(token.CustodyAddress(carol.address(), silver)))
	assert.Nil(t, c.lockRecord(lockAddr))
}

func TestConcurrentWithdrawal(t *testing.T) {
	alice, bob, carol := newAccount(), newAccount(), newAccount()
	c := newTestChain(t, alice, carol)

	unlock := timelock.AsUnixTime(c.now.Add(time.Minute))
	lockAddr, _, _, err := lock.DeriveLockAddress(alice.address(), unlock)
	require.NoError(t, err)
	res := c.deliver(alice, &lock.CreateNativeLockMsg{
		Metadata:    &timelock.Metadata{Schema: 1},
		Payer:       alice.address(),
		Beneficiary: bob.address(),
		Amount:      1000,
		UnlockTime:  unlock,
	})
	require.EqualValues(t, 0, res.Code, res.Log)
	c.commit()

	c.begin(time.Minute)
	tx := c.signedTx(bob, &lock.WithdrawNativeMsg{
		Metadata:    &timelock.Metadata{Schema: 1},
		Lock:        lockAddr,
		Beneficiary: bob.address(),
	})

	const workers = 8
	codes := make(chan uint32, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- c.app.DeliverTx(tx).Code
		}()
	}
	wg.Wait()
	close(codes)

	var succeeded int
	for code := range codes {
		if code == 0 {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	c.commit()

	assert.EqualValues(t, 1000, c.balance(bob.address()))
	assert.Nil(t, c.lockRecord(lockAddr))
}

func TestCheckTxDoesNotPersist(t *testing.T) {
	alice, bob, carol := newAccount(), newAccount(), newAccount()
	c := newTestChain(t, alice, carol)

	tx := c.signedTx(alice, &lock.CreateNativeLockMsg{
		Metadata:    &timelock.Metadata{Schema: 1},
		Payer:       alice.address(),
		Beneficiary: bob.address(),
		Amount:      6000,
		UnlockTime:  timelock.AsUnixTime(c.now.Add(time.Hour)),
	})
	code, _ := errors.ABCIInfo(lock.ErrInsufficientBalance, false)
	assert.Equal(t, code, c.app.CheckTx(tx).Code)
	c.commit()

	assert.EqualValues(t, 5000, c.balance(alice.address()))
}

func TestGenInitOptions(t *testing.T) {
	alice := newAccount()
	raw, err := GenInitOptions([]string{"GLD", alice.address().String()})
	require.NoError(t, err)

	var opts timelock.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	a, err := Application(Name, Stack(), TxDecoder, "", false)
	require.NoError(t, err)
	require.NoError(t, Initializers().FromGenesis(opts, a.DeliverStore()))

	obj, err := cash.NewBucket().Get(a.DeliverStore(), alice.address())
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.EqualValues(t, 123456789, cash.AsWallet(obj).Balance)

	gold := token.AssetID(alice.address(), "GLD")
	cu, err := token.NewController(Authenticator()).Custody(a.DeliverStore(), token.CustodyAddress(alice.address(), gold))
	require.NoError(t, err)
	require.NotNil(t, cu)
	assert.EqualValues(t, 1000000000, cu.Balance)

}
