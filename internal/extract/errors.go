package extract

import "errors"

var (
	// ErrUnsupportedType indicates the upload is not a PDF, DOCX or text file.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNoText indicates the document parsed but held no readable text.
	ErrNoText = errors.New("no text found")
)
