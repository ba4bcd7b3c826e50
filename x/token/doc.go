/*
Package token implements a ledger of issued assets held in custody
accounts.

An asset is identified by a 32 byte id derived from its issuer and
ticker. A holder never keeps asset units directly: every (owner, asset)
pair has one custody account, located at a derived address, holding the
balance. Moving units out of a custody requires the authority of its
owner.
*/
package token
