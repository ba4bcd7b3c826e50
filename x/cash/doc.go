/*
Package cash implements the native coin ledger.

Every address owns at most one wallet holding a single unsigned balance.
Other extensions move coins through the Controller, clients send coins
with SendMsg.
*/
package cash
