package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revoked
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // not allowed for this operation
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // staff endpoint

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // bad input
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // bad ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // bad format
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // out of range
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"       // no such resource
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"  // already exists
	ResourceConflict      = "RESOURCE_CONFLICT"        // conflicting state

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"        // no such product
	ProductInvalidPrice    = "PRODUCT_INVALID_PRICE"    // price must be positive
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY" // unknown category
	ProductOutOfStock      = "PRODUCT_OUT_OF_STOCK"     // not enough stock

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // no such cart item
	CartEmpty        = "CART_EMPTY"          // nothing to check out

	// ==================== Orders (ORDER_) ====================
	OrderNotFound      = "ORDER_NOT_FOUND"       // no such order
	OrderEmpty         = "ORDER_EMPTY"           // order has no items
	OrderInvalidStatus = "ORDER_INVALID_STATUS"  // unknown status value

	// ==================== Reservations (RESERVATION_) ====================
	ReservationNotFound      = "RESERVATION_NOT_FOUND"       // no such reservation
	ReservationSlotTaken     = "RESERVATION_SLOT_TAKEN"      // slot already booked
	ReservationPastDate      = "RESERVATION_PAST_DATE"       // date already passed
	ReservationInvalidParty  = "RESERVATION_INVALID_PARTY"   // people count out of range
	ReservationInvalidStatus = "RESERVATION_INVALID_STATUS"  // unknown status value

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // bad file type
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // file too big
	UploadFailed          = "UPLOAD_FAILED"            // upload failed

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // server error
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB error
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // external API error
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // configuration error
)
