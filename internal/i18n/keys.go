// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthForbidden          = "auth.forbidden"
	KeyAuthTokenIssued        = "auth.token_issued"
	KeyRateLimited            = "rate_limited"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationNameReq  = "validation.name_required"
	KeyValidationPriceNum = "validation.price_number"
	KeyValidationSearchBy = "validation.search_by"

	// Data management
	KeyDataExported      = "data.exported"
	KeyDataCopied        = "data.copied"
	KeyDataArchived      = "data.archived"
	KeyDataImported      = "data.imported"
	KeyDataImportInvalid = "data.import_invalid"
	KeyDataImportNoFile  = "data.import_no_file"
	KeyDataDemoLoaded    = "data.demo_loaded"
	KeyDataCleared       = "data.cleared"

	// Search
	KeySearchNoResults    = "search.no_results"
	KeySearchResultsFound = "search.results_found"
)
