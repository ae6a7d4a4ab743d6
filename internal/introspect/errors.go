package introspect

import (
	"fmt"

	"github.com/micatools/mica/internal/dialect"
)

// ConnectionError indicates the source database could not be reached.
type ConnectionError struct {
	Dialect dialect.Dialect
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s source: %v", e.Dialect, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthenticationError indicates missing or rejected credentials.
type AuthenticationError struct {
	Dialect dialect.Dialect
	Reason  string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authenticating to %s source: %s", e.Dialect, e.Reason)
}

// QueryError indicates a metadata query failed after a successful connect.
type QueryError struct {
	Dialect dialect.Dialect
	Op      string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("querying %s %s: %v", e.Dialect, e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
