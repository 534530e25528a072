// internal/app/system/txn/txn.go
//
// Package txn runs multi-document operations inside a Mongo
// transaction, falling back to direct execution when the server cannot
// do transactions (standalone dev instances). Callers pass a function
// that receives the session context; on the fallback path the function
// simply runs with the original context, so writes are applied in order
// but without atomicity. Production deployments run a replica set, so
// the fallback only affects local development.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fn is the unit of work executed inside (or, on fallback, outside) a
// transaction.
type Fn func(ctx context.Context) error

// WithTransaction runs fn in a Mongo transaction via the driver's
// callback API, which retries on transient errors. When the server does
// not support transactions, fn runs once without one and the degraded
// mode is logged.
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn Fn) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logFallback(log, err)
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logFallback(log, err)
		return fn(ctx)
	}
	return err
}

func logFallback(log *zap.Logger, err error) {
	if log != nil {
		log.Warn("mongo transactions unavailable; running without atomicity", zap.Error(err))
	}
}

// Transaction-unsupported server error codes:
// 20 IllegalOperation, 51 command not supported, 263 OperationNotSupportedInTransaction.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (not a replica set / sessions disabled).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && notSupportedCodes[cmdErr.Code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	return false
}
