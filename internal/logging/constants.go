package logging

// Standardized field names for structured logging. Using the same keys across
// the pipeline makes run summaries and fallback cost tracking greppable.
const (
	FieldScope     = "scope"
	FieldSourceID  = "source_id"
	FieldReason    = "reason"
	FieldAmount    = "amount"
	FieldDirection = "direction"
	FieldReference = "reference"
	FieldMerchant  = "merchant"
	FieldCount     = "count"
	FieldBackend   = "backend"
	FieldOperation = "operation"
	FieldDuration  = "duration_ms"
)
