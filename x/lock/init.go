package lock

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/gconf"
)

// Initializer stores the lock configuration from genesis.
type Initializer struct{}

var _ timelock.Initializer = Initializer{}

// FromGenesis reads conf.lock. Without it the defaults apply.
func (Initializer) FromGenesis(opts timelock.Options, db timelock.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(db, opts, "lock", &conf)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
