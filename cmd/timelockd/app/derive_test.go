package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/weavetest"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/iov-one/timelock/x/lock"
)

func TestDeriveCmd(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	addr, _, _, err := lock.DeriveLockAddress(owner, timelock.UnixTime(1570003600))
	assert.Nil(t, err)

	var out bytes.Buffer
	assert.Nil(t, DeriveCmd(&out, []string{owner.String(), "1570003600"}))
	if !strings.Contains(out.String(), addr.String()) {
		t.Fatalf("lock address %s not in output:\n%s", addr, out.String())
	}

	cases := map[string][]string{
		"no args":       nil,
		"bad owner":     {"zz", "1570003600"},
		"bad time":      {owner.String(), "soon"},
		"too many args": {owner.String(), "1", "2"},
	}
	for testName, args := range cases {
		t.Run(testName, func(t *testing.T) {
			err := DeriveCmd(&out, args)
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	assert.IsErr(t, errors.ErrInput, DeriveCmd(&out, nil))
}
