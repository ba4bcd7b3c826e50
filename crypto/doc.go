/*
Package crypto holds the ed25519 keys and signatures used to authenticate
transactions.

A public key is turned into a Condition of the form
"sigs/ed25519/<pubkey>" and the address of that condition identifies the
owner of the key.
*/
package crypto
