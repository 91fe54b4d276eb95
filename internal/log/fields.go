package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldVenueCode  = "venue_code"
	FieldBandCode   = "band_code"
	FieldEventCode  = "event_code"
	FieldCostCents  = "cost_cents"
	FieldDuration   = "duration_centihours"
	FieldPeriod     = "period"
	FieldSkipped    = "skipped_records"
	FieldPath       = "path"
	FieldExchange   = "exchange"
	FieldQueue      = "queue"
	FieldSheetRange = "sheet_range"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentShell  = "shell"
	ComponentWorker = "worker"
)
