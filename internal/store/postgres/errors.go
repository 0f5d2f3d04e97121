package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"

	"github.com/lib/pq"

	"github.com/exparity/userdao/internal/store"
)

// classifyWriteError wraps err in a *store.SaveError. Errors that already are
// a *store.SaveError are returned unchanged.
func classifyWriteError(err error) error {
	var se *store.SaveError
	if errors.As(err, &se) {
		return err
	}
	return &store.SaveError{Kind: classify(err), Err: err}
}

func classify(err error) store.Kind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "23":
			return store.KindConstraint
		case pqErr.Code.Class() == "08":
			return store.KindConnectivity
		case pqErr.Code == "57P01", pqErr.Code == "57P02", pqErr.Code == "57P03":
			// admin_shutdown, crash_shutdown, cannot_connect_now
			return store.KindConnectivity
		}
		return store.KindUnknown
	}

	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &netErr):
		return store.KindConnectivity
	}
	return store.KindUnknown
}
