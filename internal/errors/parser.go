package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// Postgres SQLSTATE codes we care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ParseError turns a raw database or service error into a code and a
// message safe to show to users. The context string hints at which
// resource the caller was working with ("product", "order create", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL constraint violations
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return parseDuplicateKeyError(errStr, context)
		case pgForeignKeyViolation:
			return parseForeignKeyError(errStr, context)
		case pgNotNullViolation:
			return parseNotNullError(errStr, context)
		case pgCheckViolation:
			return parseCheckConstraintError(errStr, context)
		}
	}

	// GORM wraps driver errors as plain strings on some paths, so fall
	// back to matching the message text.
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}
	if strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr, context)
	}
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr, context)
	}

	// 3. Network / connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "An upstream service is unavailable. Please try again later",
		}
	}

	// 4. Default: internal error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already registered",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This record already exists. Please try again",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Deleting a row that something else still references.
	if strings.Contains(errLower, "still referenced") {
		if strings.Contains(errLower, "order_items") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "This product appears in past orders and cannot be removed",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is in use and cannot be removed",
		}
	}

	// Inserting a row that points at a missing parent.
	if strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "User not found",
		}
	}
	if strings.Contains(errLower, "product_id") || strings.Contains(errLower, "fk_products") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "Product not found",
		}
	}
	if strings.Contains(errLower, "order_id") || strings.Contains(errLower, "fk_orders") {
		return ErrorInfo{
			Code:    OrderNotFound,
			Message: "Order not found",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record could not be found",
	}
}

func parseNotNullError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "Email is required"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "Password is required"}
	}
	if strings.Contains(errLower, "name") {
		return ErrorInfo{Code: ValidationRequired, Message: "Name is required"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func parseCheckConstraintError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "stock") || strings.Contains(errLower, "quantity") {
		return ErrorInfo{
			Code:    ProductOutOfStock,
			Message: "Not enough stock for this product",
		}
	}
	if strings.Contains(errLower, "price") {
		return ErrorInfo{
			Code:    ProductInvalidPrice,
			Message: "Price must be greater than zero",
		}
	}
	if strings.Contains(errLower, "people_count") {
		return ErrorInfo{
			Code:    ReservationInvalidParty,
			Message: "Party size is out of range",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "Invalid input",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart item not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}
	if strings.Contains(contextLower, "reservation") {
		return "Reservation not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}

	return "The requested record could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Failed to create the record. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Failed to update the record. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Failed to delete the record. Please try again later"
	}
	if strings.Contains(contextLower, "checkout") {
		return "Checkout failed. Please try again later"
	}

	return "Something went wrong. Please try again later"
}

// ParseAndRespond parses err and writes the corresponding JSON response.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	RespondWithError(c, statusCode, errorInfo.Code, errorInfo.Message)
}
