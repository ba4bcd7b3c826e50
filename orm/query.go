package orm

import (
	"github.com/iov-one/timelock"
)

// queryPrefix returns all key value pairs with keys that begin with the
// given prefix.
func queryPrefix(db timelock.ReadOnlyKVStore, prefix []byte) ([]timelock.Model, error) {
	itr, err := db.Iterator(prefix, prefixRangeEnd(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr timelock.Iterator) ([]timelock.Model, error) {
	defer itr.Close()

	var res []timelock.Model
	var err error
	for ; itr.Valid(); err = itr.Next() {
		if err != nil {
			return nil, err
		}
		res = append(res, timelock.Model{Key: itr.Key(), Value: itr.Value()})
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// prefixRangeEnd returns the first key that does not start with the prefix.
// nil means there is no such key.
func prefixRangeEnd(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 255 {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
