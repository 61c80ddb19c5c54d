package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error is the single error shape returned to clients.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, code, message string, err error) *Error {
	return &Error{Status: status, Code: code, Message: message, Err: err}
}

const (
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeIdentityMismatch = "identity_mismatch"
	CodeInvalidID        = "invalid_id"
	CodeInvalidSubject   = "invalid_subject"
	CodeInvalidBody      = "invalid_body"
	CodeNotFound         = "not_found"
	CodeStockConflict    = "stock_conflict"
	CodeStoreUnavailable = "store_unavailable"
	CodeStoreFailure     = "store_failure"
	CodePaymentFailure   = "payment_failure"
	CodeInternal         = "internal"
)

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, "Unauthorized access", nil)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, CodeForbidden, "Forbidden access", err)
}

func IdentityMismatch() *Error {
	return New(http.StatusForbidden, CodeIdentityMismatch, "Forbidden access", nil)
}

func InvalidID(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidID, "Malformed id", err)
}

func InvalidSubject(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidSubject, "Malformed user id", err)
}

func InvalidBody(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidBody, "Invalid request body", err)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message, nil)
}

func StockConflict(err error) *Error {
	return New(http.StatusConflict, CodeStockConflict, "Stock changed concurrently, retry the request", err)
}

func StoreUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeStoreUnavailable, "Database unavailable", err)
}

func StoreFailure(err error) *Error {
	return New(http.StatusInternalServerError, CodeStoreFailure, "Database operation failed", err)
}

func PaymentFailure(err error) *Error {
	return New(http.StatusBadGateway, CodePaymentFailure, "Payment processor request failed", err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, "Internal server error", err)
}

// From converts any error into an *Error. Errors that are not already
// an *Error become internal errors.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Middleware renders the last error attached to the gin context.
func Middleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := From(c.Errors.Last().Err)
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("code", appErr.Code),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString("request_id")),
				zap.Error(appErr.Err),
			)
		}
		c.AbortWithStatusJSON(appErr.Status, appErr)
	}
}

// Abort attaches err to the context and stops the handler chain.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Recovery turns a panic into a structured internal error.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Internal(nil))
	})
}
