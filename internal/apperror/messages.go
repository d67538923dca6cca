package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Shop scraping errors
	CodeShopFetchFailed:  "Failed to fetch shop listings",
	CodeShopParseFailed:  "Failed to parse shop listing page",
	CodeShopRateLimited:  "Shop rate limit exceeded",
	CodeBrowserExecError: "Headless browser execution failed",

	// Market price API errors
	CodeMarketAPIError:     "Market price API error",
	CodeMarketLookupFailed: "Market price lookup failed",
	CodeMarketPriceMissing: "No market price available for product",
	CodeMarketRateLimited:  "Market API rate limit exceeded",
	CodeMarketAuthRejected: "Market API rejected credentials",

	// Snapshot and persistence errors
	CodeSnapshotWriteFailed: "Failed to write snapshot document",
	CodeSnapshotReadFailed:  "Failed to read snapshot document",
	CodeHistoryWriteFailed:  "Failed to append price history",
	CodeHistoryConnFailed:   "Failed to connect to history database",

	// Notification errors
	CodeNotifySendFailed: "Failed to deliver notification",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
