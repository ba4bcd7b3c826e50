package lock

import "github.com/iov-one/timelock/errors"

// Lock errors use the 1100 ~ 1199 code range.
var (
	ErrInvalidReleaseTime  = errors.Register(1101, "release time must be in the future")
	ErrInvalidDescription  = errors.Register(1102, "invalid description")
	ErrInsufficientBalance = errors.Register(1103, "insufficient balance")
	ErrNothingToWithdraw   = errors.Register(1104, "nothing to withdraw")
	ErrDepositNotFound     = errors.Register(1105, "deposit record not found")
	ErrAlreadyWithdrawn    = errors.Register(1106, "deposit already withdrawn")
	ErrFundsLocked         = errors.Register(1107, "funds are still locked")
)
