package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/book-catalog/internal/validation"
	"go.uber.org/zap"
)

// statusClientClosedRequest is the non-standard code nginx uses when the
// client went away before the response was written.
const statusClientClosedRequest = 499

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

// writeStoreError logs a failed store call and answers 499 when the client
// canceled, 503 for timeouts and 500 for everything else.
func writeStoreError(c *gin.Context, log *zap.Logger, err error) {
	fields := []zap.Field{
		zap.String("request_id", RequestIDFrom(c)),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		fields = append(fields, zap.String("pg_code", pgErr.Code))
	}

	if errors.Is(err, context.Canceled) {
		log.Info("request canceled by client", fields...)
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn("book store timed out", fields...)
		writeError(c, http.StatusServiceUnavailable,
			"STORE_UNAVAILABLE",
			"book store did not respond in time",
		)
		return
	}

	log.Error("book store failure", fields...)
	writeError(c, http.StatusInternalServerError,
		"BOOK_FETCH_FAILED",
		"failed to fetch books",
	)
}
