package workspace

import "time"

// Workspace keys. They keep the names the browser used for local storage.
const (
	KeyPastedResume   = "alignai_pastedResume"
	KeyJobTitle       = "alignai_jobTitle"
	KeyJobDescription = "alignai_jobDescription"
)

// MaxValueBytes caps a single stored value.
const MaxValueBytes = 256 << 10

// Keys lists the accepted keys in display order.
func Keys() []string {
	return []string{KeyPastedResume, KeyJobTitle, KeyJobDescription}
}

// IsKey reports whether key is one of Keys.
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Entry is one stored draft value.
type Entry struct {
	UserID    string
	Key       string
	Value     string
	UpdatedAt time.Time
}
