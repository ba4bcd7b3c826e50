package app

import "github.com/iov-one/timelock"

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...timelock.Initializer) timelock.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []timelock.Initializer

var _ timelock.Initializer = chainInitializer(nil)

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts timelock.Options, kv timelock.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
