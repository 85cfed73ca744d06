package content

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// RemoteReadError describes a failed list or get. It never escapes the
// public list operations, which substitute an empty or default value;
// ListRegistrations returns it so the caller decides.
type RemoteReadError struct {
	Op     string
	Entity string
	Err    error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Op, e.Entity, storeMessage(e.Err))
}

func (e *RemoteReadError) Unwrap() error { return e.Err }

// RemoteWriteError describes a rejected create, update, delete or upsert.
type RemoteWriteError struct {
	Op     string
	Entity string
	Err    error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("failed to %s %s: %s", e.Op, e.Entity, storeMessage(e.Err))
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }

// IsRemoteWrite reports whether err is a RemoteWriteError.
func IsRemoteWrite(err error) bool {
	var werr *RemoteWriteError
	return errors.As(err, &werr)
}

// storeMessage prefers the server's own message over the driver's prefix.
func storeMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Message
	}
	return err.Error()
}

// storeCode returns the SQLSTATE code when the store reported one.
func storeCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
