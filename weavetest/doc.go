// Package weavetest provides mocks and fixtures for testing extensions:
// authenticators, keys, transactions, handlers and decorators.
package weavetest
