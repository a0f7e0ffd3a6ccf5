package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal single-page PDF, computing the xref table
// offsets as it goes so the result is well-formed.
func buildPDF(t *testing.T, contentStream string) []byte {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(contentStream), contentStream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}

func TestPDFExtractsText(t *testing.T) {
	data := buildPDF(t, "BT /F1 12 Tf 72 720 Td (John Doe, Software Engineer) Tj ET")

	text, err := PDF(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "John Doe") {
		t.Fatalf("expected extracted text to contain name, got %q", text)
	}
	if text != strings.TrimSpace(text) {
		t.Fatalf("expected trimmed output, got %q", text)
	}
}

func TestPDFTextlessDocumentYieldsEmpty(t *testing.T) {
	data := buildPDF(t, "")

	text, err := PDF(data)
	if err != nil {
		t.Fatalf("expected no error for textless pdf, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestPDFMalformedBytes(t *testing.T) {
	_, err := PDF([]byte("definitely not a pdf"))
	if err == nil {
		t.Fatal("expected error for malformed bytes")
	}
	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *extract.Error, got %T", err)
	}
}
