package app

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/iov-one/timelock/x/utils"
)

// countingDecorator counts the calls passing through it.
type countingDecorator struct {
	calls int
}

func (d *countingDecorator) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Checker) (*timelock.CheckResult, error) {
	d.calls++
	return next.Check(ctx, db, tx)
}

func (d *countingDecorator) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx, next timelock.Deliverer) (*timelock.DeliverResult, error) {
	d.calls++
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	var missing *countingDecorator
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		missing,
		utils.NewRecovery(),
	).Chain(c2).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/path"}}

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, c1.calls)
	assert.Equal(t, 2, c2.calls)
	assert.Equal(t, 2, h.CallCount())

	// A panic below the recovery decorator becomes an error.
	panicking := ChainDecorators(c1, utils.NewRecovery()).WithHandler(weavetest.PanicHandler{Value: "boom"})
	_, err = panicking.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	assert.Equal(t, 3, c1.calls)
}
