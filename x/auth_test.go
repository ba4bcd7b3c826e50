package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/iov-one/timelock/x"
)

func TestChainAuth(t *testing.T) {
	signer := weavetest.NewCondition()
	authority := weavetest.NewCondition()
	other := weavetest.NewCondition()

	sigAuth := &weavetest.CtxAuth{Key: "sigs"}
	lockAuth := &weavetest.CtxAuth{Key: "lock"}
	auth := x.ChainAuth(sigAuth, lockAuth)

	ctx := context.Background()
	ctx = sigAuth.SetConditions(ctx, signer)
	ctx = lockAuth.SetConditions(ctx, authority, signer)

	assert.Equal(t, []timelock.Condition{signer, authority}, auth.GetConditions(ctx))
	assert.Equal(t, true, auth.HasAddress(ctx, signer.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, authority.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, other.Address()))

	assert.Equal(t, 0, len(auth.GetConditions(context.Background())))
}
