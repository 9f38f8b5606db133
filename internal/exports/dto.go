package exports

import "time"

// ExportResponse is the outward-facing representation of an export.
type ExportResponse struct {
	ExportID  string    `json:"exportId"`
	Source    string    `json:"source"`
	FileName  string    `json:"fileName"`
	MimeType  string    `json:"mimeType"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toExportResponse(e Export) ExportResponse {
	return ExportResponse{
		ExportID:  e.ID,
		Source:    e.Source,
		FileName:  e.FileName,
		MimeType:  e.MimeType,
		SizeBytes: e.SizeBytes,
		CreatedAt: e.CreatedAt,
	}
}

type createRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}
