package exports

import "time"

const (
	// FileName is the download name of every export.
	FileName = "AlignAI_Resume.txt"
	// MimeType is the stored and served content type.
	MimeType = "text/plain; charset=utf-8"
	// MaxTextBytes caps one export.
	MaxTextBytes = 512 << 10
)

// Export sources.
const (
	SourcePreview  = "preview"
	SourceGenerate = "generate"
	SourceOptimize = "optimize"
	SourceTailor   = "tailor"
	SourceManual   = "manual"
)

// Export records one stored .txt copy of a resume.
type Export struct {
	ID         string
	UserID     string
	Source     string
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}

func validSource(s string) bool {
	switch s {
	case SourcePreview, SourceGenerate, SourceOptimize, SourceTailor, SourceManual:
		return true
	}
	return false
}
