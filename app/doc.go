/*
Package app contains the ABCI application built from the timelock
framework pieces: a commit store with check and deliver caches, a
router dispatching messages by path and a chain of decorators wrapping
it.
*/
package app
