package lock

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
	"github.com/iov-one/timelock/x/cash"
	"github.com/iov-one/timelock/x/token"
)

const (
	createLockCost   int64 = 300
	withdrawLockCost int64 = 200
)

// RegisterQuery registers locks as "/locks" with the "/locks/owner" and
// "/locks/beneficiary" indexes.
func RegisterQuery(qr timelock.QueryRouter) {
	NewBucket().Register("locks", qr)
}

// RegisterRoutes will instantiate and register all handlers in this
// package. The token controller must accept the authority of
// Authenticate to let funds leave a lock custody account.
func RegisterRoutes(r timelock.Registry, auth x.Authenticator, coins cash.Controller, tokens token.Controller) {
	b := NewBucket()
	r.Handle(pathCreateNativeLockMsg, CreateNativeLockHandler{auth: auth, bucket: b, coins: coins})
	r.Handle(pathCreateTokenLockMsg, CreateTokenLockHandler{auth: auth, bucket: b, coins: coins, tokens: tokens})
	r.Handle(pathWithdrawNativeMsg, WithdrawNativeHandler{auth: auth, bucket: b, coins: coins})
	r.Handle(pathWithdrawTokenMsg, WithdrawTokenHandler{auth: auth, bucket: b, coins: coins, tokens: tokens})
}

// lockRequest holds the common arguments of both create messages.
type lockRequest struct {
	Payer       timelock.Address
	Beneficiary timelock.Address
	Amount      uint64
	UnlockTime  timelock.UnixTime
	Description string
}

// prepared is a lock that passed every creation precondition, ready to
// be funded and saved.
type prepared struct {
	addr timelock.Address
	lock *Lock
	conf Configuration
}

// prepareLock checks the preconditions shared by both asset kinds and
// builds the lock record. Nothing is written.
func prepareLock(ctx timelock.Context, db timelock.KVStore, auth x.Authenticator, b Bucket, req lockRequest, asset Asset) (*prepared, error) {
	if !auth.HasAddress(ctx, req.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if len(req.Description) > int(conf.MaxDescriptionLength) {
		return nil, errors.Wrapf(ErrInvalidDescription, "longer than %d", conf.MaxDescriptionLength)
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, err
	}
	if req.UnlockTime <= now {
		return nil, errors.Wrapf(ErrInvalidReleaseTime, "unlock time %d is not after %d", req.UnlockTime, now)
	}
	if req.Amount == 0 {
		return nil, errors.Wrap(ErrInsufficientBalance, "zero amount")
	}

	addr, _, bump, err := DeriveLockAddress(req.Payer, req.UnlockTime)
	if err != nil {
		return nil, errors.Wrap(err, "derive lock address")
	}
	switch has, err := b.Has(db, addr); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "lock %s", addr)
	}

	l := NewLock(int(conf.MaxDescriptionLength))
	l.Owner = req.Payer
	l.Beneficiary = req.Beneficiary
	l.Asset = asset
	l.Amount = req.Amount
	l.UnlockTime = req.UnlockTime
	l.Description = req.Description
	l.Bump = bump
	return &prepared{addr: addr, lock: l, conf: conf}, nil
}

// requireCoins fails with ErrInsufficientBalance if the payer cannot
// cover the native amount.
func requireCoins(db timelock.KVStore, coins cash.Controller, payer timelock.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	have, err := coins.Balance(db, payer)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(ErrInsufficientBalance, "have %d, need %d", have, amount)
	}
	return nil
}

// save stores the funded lock and returns the creation result.
func (p *prepared) save(db timelock.KVStore, b Bucket) (*timelock.DeliverResult, error) {
	if err := b.Put(db, p.addr, p.lock); err != nil {
		return nil, errors.Wrap(err, "save lock")
	}
	Metrics().Created(p.lock.Asset.Kind()).Inc()
	return &timelock.DeliverResult{
		Data: p.addr,
		Tags: fundsLocked(p.addr, p.lock),
	}, nil
}

// CreateNativeLockHandler locks native coins.
type CreateNativeLockHandler struct {
	auth   x.Authenticator
	bucket Bucket
	coins  cash.Controller
}

var _ timelock.Handler = CreateNativeLockHandler{}

func (h CreateNativeLockHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: createLockCost}, nil
}

func (h CreateNativeLockHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	payer := p.lock.Owner
	if err := h.coins.MoveCoins(db, payer, p.addr, p.lock.Amount); err != nil {
		return nil, errors.Wrap(err, "fund lock")
	}
	if d := p.conf.RecordDeposit; d > 0 {
		if err := h.coins.MoveCoins(db, payer, p.addr, d); err != nil {
			return nil, errors.Wrap(err, "record deposit")
		}
	}
	return p.save(db, h.bucket)
}

func (h CreateNativeLockHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*prepared, error) {
	var msg CreateNativeLockMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	req := lockRequest{
		Payer:       msg.Payer,
		Beneficiary: msg.Beneficiary,
		Amount:      msg.Amount,
		UnlockTime:  msg.UnlockTime,
		Description: msg.Description,
	}
	p, err := prepareLock(ctx, db, h.auth, h.bucket, req, Native{})
	if err != nil {
		return nil, err
	}
	if msg.Amount+p.conf.RecordDeposit < msg.Amount {
		return nil, errors.Wrap(errors.ErrOverflow, "amount with deposit")
	}
	if err := requireCoins(db, h.coins, msg.Payer, msg.Amount+p.conf.RecordDeposit); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateTokenLockHandler locks units of a token asset.
type CreateTokenLockHandler struct {
	auth   x.Authenticator
	bucket Bucket
	coins  cash.Controller
	tokens token.Controller
}

var _ timelock.Handler = CreateTokenLockHandler{}

func (h CreateTokenLockHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: createLockCost}, nil
}

func (h CreateTokenLockHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	p, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.tokens.Custody(db, msg.LockCustody); errors.ErrNotFound.Is(err) {
		if _, err := h.tokens.Open(db, p.addr, msg.AssetID); err != nil {
			return nil, errors.Wrap(err, "open lock custody")
		}
	} else if err != nil {
		return nil, err
	}
	if err := h.tokens.Transfer(ctx, db, msg.PayerCustody, msg.LockCustody, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "fund lock")
	}
	if d := p.conf.RecordDeposit; d > 0 {
		if err := h.coins.MoveCoins(db, msg.Payer, p.addr, d); err != nil {
			return nil, errors.Wrap(err, "record deposit")
		}
	}
	return p.save(db, h.bucket)
}

func (h CreateTokenLockHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*prepared, *CreateTokenLockMsg, error) {
	var msg CreateTokenLockMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	req := lockRequest{
		Payer:       msg.Payer,
		Beneficiary: msg.Beneficiary,
		Amount:      msg.Amount,
		UnlockTime:  msg.UnlockTime,
		Description: msg.Description,
	}
	p, err := prepareLock(ctx, db, h.auth, h.bucket, req, Token{ID: msg.AssetID})
	if err != nil {
		return nil, nil, err
	}

	if !msg.PayerCustody.Equals(token.CustodyAddress(msg.Payer, msg.AssetID)) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "payer custody does not belong to the payer")
	}
	if !msg.LockCustody.Equals(token.CustodyAddress(p.addr, msg.AssetID)) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "lock custody does not belong to the lock")
	}
	custody, err := h.tokens.Custody(db, msg.PayerCustody)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "payer custody does not exist")
	case err != nil:
		return nil, nil, err
	}
	if !custody.Owner.Equals(msg.Payer) || !timelock.Address(custody.Asset).Equals(msg.AssetID) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "payer custody does not hold the asset for the payer")
	}
	if custody.Balance < msg.Amount {
		return nil, nil, errors.Wrapf(ErrInsufficientBalance, "have %d, need %d", custody.Balance, msg.Amount)
	}
	if err := requireCoins(db, h.coins, msg.Payer, p.conf.RecordDeposit); err != nil {
		return nil, nil, err
	}
	return p, &msg, nil
}

// withdrawal is a lock that passed every withdrawal precondition.
type withdrawal struct {
	addr timelock.Address
	lock *Lock
	cond timelock.Condition
}

// prepareWithdrawal loads the lock and checks, in order, the caller,
// the asset kind, the unlock time, the spent flag and the amount.
func prepareWithdrawal(ctx timelock.Context, db timelock.KVStore, auth x.Authenticator, b Bucket, addr, beneficiary timelock.Address, asset Asset) (*withdrawal, error) {
	l, err := b.GetLock(db, addr)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.Wrapf(ErrDepositNotFound, "lock %s", addr)
	}
	cond, err := l.Condition(addr)
	if err != nil {
		return nil, err
	}

	if !auth.HasAddress(ctx, beneficiary) || !beneficiary.Equals(l.Beneficiary) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the beneficiary can withdraw")
	}
	if l.Asset.Kind() != asset.Kind() {
		return nil, errors.Wrapf(ErrFundsLocked, "lock holds a %s asset", l.Asset.Kind())
	}
	if !sameAsset(l.Asset, asset) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "asset does not match the lock")
	}
	now, err := blockTime(ctx)
	if err != nil {
		return nil, err
	}
	if now < l.UnlockTime {
		return nil, errors.Wrapf(ErrFundsLocked, "locked until %s", l.UnlockTime)
	}
	if l.Spent {
		return nil, errors.Wrap(ErrAlreadyWithdrawn, "lock is spent")
	}
	if l.Amount == 0 {
		return nil, errors.Wrap(ErrNothingToWithdraw, "zero amount")
	}
	return &withdrawal{addr: addr, lock: l, cond: cond}, nil
}

// spend marks the lock spent before any funds move.
func (w *withdrawal) spend(db timelock.KVStore, b Bucket) error {
	w.lock.Spent = true
	return errors.Wrap(b.Put(db, w.addr, w.lock), "mark spent")
}

// close returns the remaining native balance of the lock address to the
// beneficiary and destroys the record.
func (w *withdrawal) close(db timelock.KVStore, b Bucket, coins cash.Controller) (*timelock.DeliverResult, error) {
	rest, err := coins.Balance(db, w.addr)
	if err != nil {
		return nil, err
	}
	if rest > 0 {
		if err := coins.MoveCoins(db, w.addr, w.lock.Beneficiary, rest); err != nil {
			return nil, errors.Wrap(err, "return deposit")
		}
	}
	if err := b.Delete(db, w.addr); err != nil {
		return nil, errors.Wrap(err, "delete lock")
	}
	Metrics().Withdrawn(w.lock.Asset.Kind()).Inc()
	return &timelock.DeliverResult{Tags: fundsWithdrawn(w.addr, w.lock)}, nil
}

// WithdrawNativeHandler releases native locks.
type WithdrawNativeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	coins  cash.Controller
}

var _ timelock.Handler = WithdrawNativeHandler{}

func (h WithdrawNativeHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: withdrawLockCost}, nil
}

func (h WithdrawNativeHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	w, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := w.spend(db, h.bucket); err != nil {
		return nil, err
	}
	// The native amount is part of the lock address balance, close
	// releases it together with the deposit.
	return w.close(db, h.bucket, h.coins)
}

func (h WithdrawNativeHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*withdrawal, error) {
	var msg WithdrawNativeMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, err := prepareWithdrawal(ctx, db, h.auth, h.bucket, msg.Lock, msg.Beneficiary, Native{})
	if err != nil {
		return nil, err
	}
	if err := requireCoins(db, h.coins, w.addr, w.lock.Amount); err != nil {
		return nil, errors.Wrap(errors.ErrState, "lock address does not hold the locked amount")
	}
	return w, nil
}

// WithdrawTokenHandler releases token locks.
type WithdrawTokenHandler struct {
	auth   x.Authenticator
	bucket Bucket
	coins  cash.Controller
	tokens token.Controller
}

var _ timelock.Handler = WithdrawTokenHandler{}

func (h WithdrawTokenHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: withdrawLockCost}, nil
}

func (h WithdrawTokenHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	w, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := w.spend(db, h.bucket); err != nil {
		return nil, err
	}
	if _, err := h.tokens.Custody(db, msg.BeneficiaryCustody); errors.ErrNotFound.Is(err) {
		if _, err := h.tokens.Open(db, msg.Beneficiary, msg.AssetID); err != nil {
			return nil, errors.Wrap(err, "open beneficiary custody")
		}
	} else if err != nil {
		return nil, err
	}

	// Funds leave the lock custody with the authority of the lock. The
	// custody address is public, so anything credited to it on top of the
	// locked amount is released too and the account can always be closed.
	held, err := h.tokens.Custody(db, msg.LockCustody)
	if err != nil {
		return nil, errors.Wrap(err, "lock custody")
	}
	lockCtx := withLock(ctx, w.cond)
	if err := h.tokens.Transfer(lockCtx, db, msg.LockCustody, msg.BeneficiaryCustody, held.Balance); err != nil {
		return nil, errors.Wrap(err, "release funds")
	}
	if err := h.tokens.Close(lockCtx, db, msg.LockCustody); err != nil {
		return nil, errors.Wrap(err, "close lock custody")
	}
	return w.close(db, h.bucket, h.coins)
}

func (h WithdrawTokenHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*withdrawal, *WithdrawTokenMsg, error) {
	var msg WithdrawTokenMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	w, err := prepareWithdrawal(ctx, db, h.auth, h.bucket, msg.Lock, msg.Beneficiary, Token{ID: msg.AssetID})
	if err != nil {
		return nil, nil, err
	}
	if !msg.LockCustody.Equals(token.CustodyAddress(w.addr, msg.AssetID)) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "lock custody does not belong to the lock")
	}
	if !msg.BeneficiaryCustody.Equals(token.CustodyAddress(msg.Beneficiary, msg.AssetID)) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "beneficiary custody does not belong to the beneficiary")
	}
	held, err := h.tokens.Custody(db, msg.LockCustody)
	if err != nil {
		return nil, nil, errors.Wrap(err, "lock custody")
	}
	if held.Balance < w.lock.Amount {
		return nil, nil, errors.Wrap(errors.ErrState, "lock custody does not hold the locked amount")
	}
	return w, &msg, nil
}

func blockTime(ctx timelock.Context) (timelock.UnixTime, error) {
	now, err := timelock.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return timelock.AsUnixTime(now), nil
}
