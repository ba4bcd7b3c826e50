package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store/iavl"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// recordInit writes every genesis option under its own key.
type recordInit struct{}

func (recordInit) FromGenesis(opts timelock.Options, db timelock.KVStore) error {
	for k, v := range opts {
		if err := db.Set([]byte("opt:"+k), v); err != nil {
			return err
		}
	}
	return nil
}

func newTestStoreApp(t testing.TB) *StoreApp {
	t.Helper()
	qr := timelock.NewQueryRouter()
	qr.Register("/opts", rawQuery{})
	return NewStoreApp("test-app", iavl.MockCommitStore(), qr, context.Background()).
		WithInit(recordInit{})
}

type rawValue []byte

func (r rawValue) Marshal() ([]byte, error) { return r, nil }
func (r *rawValue) Unmarshal(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

// rawQuery returns the value stored under the raw key.
type rawQuery struct{}

func (rawQuery) Query(db timelock.ReadOnlyKVStore, mod string, data []byte) ([]timelock.Model, error) {
	v, err := db.Get(data)
	if err != nil || v == nil {
		return nil, err
	}
	return []timelock.Model{timelock.Pair(data, v)}, nil
}

func TestStoreAppLifecycle(t *testing.T) {
	s := newTestStoreApp(t)

	s.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: []byte(`{"lock": {"max": 5}}`),
	})
	assert.Equal(t, "test-chain-1", s.GetChainID())
	assert.Equal(t, "test-chain-1", timelock.GetChainID(s.baseContext))

	// Nothing is visible to queries before the commit.
	res := s.Query(abci.RequestQuery{Path: "/opts", Data: []byte("opt:lock")})
	assert.Equal(t, uint32(0), res.Code)
	var values ResultSet
	assert.Nil(t, values.Unmarshal(res.Value))
	assert.Equal(t, 0, len(values.Results))

	commit := s.Commit()
	require.NotEmpty(t, commit.Data)

	res = s.Query(abci.RequestQuery{Path: "/opts", Data: []byte("opt:lock")})
	assert.Equal(t, int64(1), res.Height)
	var raw rawValue
	assert.Nil(t, UnmarshalOneResult(res.Value, &raw))
	assert.Equal(t, `{"max": 5}`, string(raw))

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "test-app", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	now := time.Now()
	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2, Time: now}})
	height, ok := timelock.GetHeight(s.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(2), height)
	blockTime, err := timelock.BlockTime(s.BlockContext())
	assert.Nil(t, err)
	require.True(t, now.Equal(blockTime))
}

func TestStoreAppRejectsSecondGenesis(t *testing.T) {
	s := newTestStoreApp(t)
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{}`)})
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain-2", AppStateBytes: []byte(`{}`)})
	})
}

func TestStoreAppUnknownQuery(t *testing.T) {
	s := newTestStoreApp(t)
	res := s.Query(abci.RequestQuery{Path: "/nothing"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
}

func TestBaseAppDecodeFailure(t *testing.T) {
	s := newTestStoreApp(t)
	decoder := func([]byte) (timelock.Tx, error) {
		return nil, errors.Wrap(errors.ErrInput, "bad tx")
	}
	b := NewBaseApp(s, decoder, NewRouter())

	res := b.DeliverTx([]byte("garbage"))
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
	chk := b.CheckTx([]byte("garbage"))
	assert.Equal(t, errors.ErrInput.ABCICode(), chk.Code)
}

func TestBaseAppDispatches(t *testing.T) {
	s := newTestStoreApp(t)
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain-1", AppStateBytes: []byte(`{}`)})

	h := &weavetest.Handler{DeliverResult: timelock.DeliverResult{Data: []byte("ok")}}
	rt := NewRouter()
	rt.Handle("test/path", h)
	decoder := func([]byte) (timelock.Tx, error) {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/path"}}, nil
	}
	b := NewBaseApp(s, decoder, rt)

	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})
	res := b.DeliverTx(nil)
	assert.Equal(t, uint32(0), res.Code)
	assert.Equal(t, []byte("ok"), res.Data)
	chk := b.CheckTx(nil)
	assert.Equal(t, uint32(0), chk.Code)
	assert.Equal(t, 2, h.CallCount())
}
