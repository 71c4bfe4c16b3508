package dto

// ── CSV import DTOs ──

// ImportValidationResponse is the pre-import dry-run verdict for a CSV file.
type ImportValidationResponse struct {
	Valid    bool     `json:"valid"`
	Rows     int      `json:"rows"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ImportResultResponse reports what an import actually did.
type ImportResultResponse struct {
	Imported   int      `json:"imported"`
	Duplicates int      `json:"duplicates"`
	Replaced   int      `json:"replaced"` // manual shifts displaced by imported ones
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}
