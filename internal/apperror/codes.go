package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Engine-specific error codes
const (
	// Shop scraping errors
	CodeShopFetchFailed  Code = "SHOP_FETCH_FAILED"
	CodeShopParseFailed  Code = "SHOP_PARSE_FAILED"
	CodeShopRateLimited  Code = "SHOP_RATE_LIMITED"
	CodeBrowserExecError Code = "BROWSER_EXEC_ERROR"

	// Market price API errors
	CodeMarketAPIError     Code = "MARKET_API_ERROR"
	CodeMarketLookupFailed Code = "MARKET_LOOKUP_FAILED"
	CodeMarketPriceMissing Code = "MARKET_PRICE_MISSING"
	CodeMarketRateLimited  Code = "MARKET_RATE_LIMITED"
	CodeMarketAuthRejected Code = "MARKET_AUTH_REJECTED"

	// Snapshot and persistence errors
	CodeSnapshotWriteFailed Code = "SNAPSHOT_WRITE_FAILED"
	CodeSnapshotReadFailed  Code = "SNAPSHOT_READ_FAILED"
	CodeHistoryWriteFailed  Code = "HISTORY_WRITE_FAILED"
	CodeHistoryConnFailed   Code = "HISTORY_CONN_FAILED"

	// Notification errors
	CodeNotifySendFailed Code = "NOTIFY_SEND_FAILED"

	// Circuit breaker errors
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
