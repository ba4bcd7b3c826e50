/*
Package errors implements custom error interfaces for the timelock chain.

Reuse the root errors declared in this package whenever possible and register
a package error only when nothing here describes the failure. Extensions
register their own root errors with Register(code, description), making sure
codes never clash.

Code stands for the ABCI error code, which allows the client to distinguish
kinds of failures and act accordingly.

Errors carry a stacktrace. Create them with ErrXyz.New("...") or
errors.Wrap(err, "...") at the point of failure so the trace is captured
there. Only the innermost wrap records a stacktrace.

	%s is just the error message
	%+v is the full stack trace
*/
package errors
