package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/lock"
)

// DeriveCmd prints the lock address of the given owner and unlock time.
// Clients use it to fill the custody references of token lock messages.
//
//   derive <owner address> <unlock unix time>
func DeriveCmd(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.Wrap(errors.ErrInput, "usage: derive <owner> <unlock time>")
	}
	owner, err := timelock.ParseAddress(args[0])
	if err != nil {
		return errors.Wrap(err, "owner")
	}
	unix, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "unlock time %q", args[1])
	}
	addr, _, bump, err := lock.DeriveLockAddress(owner, timelock.UnixTime(unix))
	if err != nil {
		return err
	}
	bech, err := addr.Bech32()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "address: %s\nbech32:  %s\nbump:    %d\n", addr, bech, bump)
	return err
}
