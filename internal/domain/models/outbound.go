package models

// ImportResult is returned to clients once an upload has been persisted.
type ImportResult struct {
	Kind          Kind   `json:"kind"`
	InsertedCount int    `json:"inserted_count"`
	TotalCount    int    `json:"total_count"`
	Message       string `json:"message"`
}

// ExportResult describes a finished Google Sheets export.
type ExportResult struct {
	Kind         Kind   `json:"kind"`
	Sheet        string `json:"sheet"`
	ExportedRows int    `json:"exported_rows"`
}

// RecordsPage is the filtered view of a loaded collection.
type RecordsPage struct {
	Kind        Kind   `json:"kind"`
	Total       int    `json:"total"`
	Filtered    int    `json:"filtered"`
	Query       string `json:"query,omitempty"`
	FilterField string `json:"filter_field,omitempty"`
	FilterValue string `json:"filter_value,omitempty"`
	Records     any    `json:"records"`
}

// ProgressEvent is streamed to clients while a long running import is in progress.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}
