package token

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x"
)

const (
	issueAssetCost int64 = 200
	transferCost   int64 = 100
)

// RegisterQuery registers assets as "/assets" and custody accounts as
// "/custody" with the "/custody/owner" index.
func RegisterQuery(qr timelock.QueryRouter) {
	NewAssetBucket().Register("assets", qr)
	NewCustodyBucket().Register("custody", qr)
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r timelock.Registry, auth x.Authenticator, control BaseController) {
	r.Handle(pathIssueAssetMsg, IssueAssetHandler{auth: auth, control: control})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, control: control})
}

// IssueAssetHandler creates new assets.
type IssueAssetHandler struct {
	auth    x.Authenticator
	control BaseController
}

var _ timelock.Handler = IssueAssetHandler{}

func (h IssueAssetHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: issueAssetCost}, nil
}

func (h IssueAssetHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.control.Issue(db, msg.Issuer, msg.Ticker, msg.Supply)
	if err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{Data: id}, nil
}

func (h IssueAssetHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*IssueAssetMsg, error) {
	var msg IssueAssetMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	return &msg, nil
}

// TransferHandler moves units between custody accounts.
type TransferHandler struct {
	auth    x.Authenticator
	control BaseController
}

var _ timelock.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &timelock.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*timelock.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	dest := CustodyAddress(msg.Recipient, msg.AssetID)
	switch has, err := h.control.custody.Has(db, dest); {
	case err != nil:
		return nil, err
	case !has:
		if _, err := h.control.Open(db, msg.Recipient, msg.AssetID); err != nil {
			return nil, errors.Wrap(err, "open recipient custody")
		}
	}
	src := CustodyAddress(msg.Owner, msg.AssetID)
	if err := h.control.Transfer(ctx, db, src, dest, msg.Amount); err != nil {
		return nil, err
	}
	return &timelock.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx timelock.Context, db timelock.KVStore, tx timelock.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := timelock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	return &msg, nil
}
