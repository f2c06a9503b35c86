package models

// UploadedFile is a single document submitted for text extraction.
type UploadedFile struct {
	Name string
	Data []byte
}

// FileError records a per-file failure during batch processing. Batches
// continue past individual failures; errors are reported back to the caller.
type FileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ExtractionResult holds company facts pulled from document text. Every
// field is optional; extraction never fabricates values, so fields absent
// from the source documents stay empty.
type ExtractionResult struct {
	CompanyName     string `json:"company_name"`
	CompanyOverview string `json:"company_overview"`
	TeamBackground  string `json:"team_background"`
	Financials      string `json:"financials"`
	MarketInfo      string `json:"market_info"`
	Stage           string `json:"stage"`
	KeyMetrics      string `json:"key_metrics"`
	AdditionalNotes string `json:"additional_notes"`
}

// TestCompanyData is a generated sample company used to exercise the memo
// form without typing real data.
type TestCompanyData struct {
	CompanyName     string `json:"company_name"`
	CompanyOverview string `json:"company_overview"`
	TeamBackground  string `json:"team_background"`
	CompanyProfile
}
