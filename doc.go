/*
Package timelock defines the common interfaces of the time-locked escrow
chain, together with the simpler shared components: conditions and
addresses, deterministic address derivation, the handler and decorator
contracts, transactions, the key-value store interfaces and the query
router.

Extensions live under x/. The lock extension (x/lock) implements the escrow
itself; x/cash and x/token provide the native and tokenized ledgers it moves
funds through; x/sigs authenticates the callers.

We pass context through context.Context between app, middleware, and
handlers. There exist two functions for every XYZ of type T that we want to
carry in the Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, to avoid lower-level modules
overwriting the value (eg. height, header).
*/
package timelock
