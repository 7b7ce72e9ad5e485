package dto

// ExportRequest captures POST /exports payload.
type ExportRequest struct {
	Granularity string `json:"granularity" validate:"required,oneof=day week month"`
	Date        string `json:"date" validate:"required"`
	Format      string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportJobResponse is returned after enqueueing an export.
type ExportJobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ExportStatusResponse exposes job progress metadata.
type ExportStatusResponse struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Format    string  `json:"format"`
	ResultURL *string `json:"resultUrl,omitempty"`
	Error     *string `json:"error,omitempty"`
}
