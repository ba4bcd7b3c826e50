package lock

import (
	"strconv"

	"github.com/iov-one/timelock"
	"github.com/tendermint/tendermint/libs/common"
)

// Event names published under the "action" tag.
const (
	EventFundsLocked    = "funds_locked"
	EventFundsWithdrawn = "funds_withdrawn"
)

// EventKey is the tag holding the event name.
const EventKey = "action"

func fundsLocked(addr timelock.Address, l *Lock) []common.KVPair {
	return []common.KVPair{
		timelock.Tag(EventKey, EventFundsLocked),
		timelock.Tag("lock", addr.String()),
		timelock.Tag("owner", l.Owner.String()),
		timelock.Tag("beneficiary", l.Beneficiary.String()),
		timelock.Tag("asset", l.Asset.String()),
		timelock.Tag("amount", strconv.FormatUint(l.Amount, 10)),
		timelock.Tag("unlock_time", strconv.FormatInt(int64(l.UnlockTime), 10)),
		timelock.Tag("description", l.Description),
	}
}

func fundsWithdrawn(addr timelock.Address, l *Lock) []common.KVPair {
	return []common.KVPair{
		timelock.Tag(EventKey, EventFundsWithdrawn),
		timelock.Tag("lock", addr.String()),
		timelock.Tag("beneficiary", l.Beneficiary.String()),
		timelock.Tag("asset", l.Asset.String()),
		timelock.Tag("amount", strconv.FormatUint(l.Amount, 10)),
	}
}
