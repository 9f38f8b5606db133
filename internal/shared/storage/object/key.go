package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

const maxFileNameLength = 100

// ErrInvalidFileName rejects names that cannot be used as a key suffix.
var ErrInvalidFileName = errors.New("invalid file name")

// NewKey builds "<user hash>/<uuid>_<file name>". User IDs never appear in keys.
func NewKey(userID, fileName string) (string, error) {
	name, err := SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join(UserPrefix(userID), uuid.NewString()+"_"+name), nil
}

// UserPrefix is the hex sha256 of userID, the first key segment of every
// object that user owns.
func UserPrefix(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// SanitizeFileName keeps letters, digits, '.', '-' and '_', replaces any
// other rune with '_' and caps the length. Traversal names are rejected.
func SanitizeFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		if b.Len() >= maxFileNameLength {
			break
		}
	}
	out := b.String()
	if strings.Trim(out, "._") == "" {
		return "", ErrInvalidFileName
	}
	return out, nil
}
