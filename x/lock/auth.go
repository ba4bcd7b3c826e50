package lock

import (
	"context"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/x"
)

type contextKey int

const contextKeyLock contextKey = iota

// withLock places the condition of a lock being withdrawn in the
// context. Only this package can do it.
func withLock(ctx timelock.Context, cond timelock.Condition) timelock.Context {
	return context.WithValue(ctx, contextKeyLock, cond)
}

// Authenticate grants the authority of the lock being withdrawn, so the
// funds it holds can leave its address.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx timelock.Context) []timelock.Condition {
	cond, ok := ctx.Value(contextKeyLock).(timelock.Condition)
	if !ok {
		return nil
	}
	return []timelock.Condition{cond}
}

func (a Authenticate) HasAddress(ctx timelock.Context, addr timelock.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
