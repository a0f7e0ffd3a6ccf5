package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Error reports that the document bytes could not be parsed as a PDF.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract pdf: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// PDF pulls plain text out of an in-memory PDF document.
//
// Pages are concatenated in page order, separated by a newline, and the
// result is trimmed of leading and trailing whitespace. A well-formed but
// textless document (e.g. a scanned image) yields an empty string with a
// nil error; callers must treat that as "no content", not a failure.
func PDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &Error{Err: err}
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return strings.TrimSpace(sb.String()), nil
}
