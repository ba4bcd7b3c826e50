/*
Package lock implements time locked escrow.

A payer locks an amount of the native coin or of a token asset for a
beneficiary until an unlock time. The funds are kept at an address
derived from the owner and the unlock time, so anyone can recompute it
offline. Once the unlock time has passed the beneficiary withdraws the
whole amount in a single call and the lock is destroyed.

Only one lock may exist for a given owner and unlock time.
*/
package lock
