package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPDF assembles a minimal single-page PDF carrying the given content
// stream, computing xref offsets so the file is well-formed.
func testPDF(contentStream string) []byte {
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

func TestPipelineRunEndToEnd(t *testing.T) {
	fake := &fakeText{responses: []response{{text: validRecordJSON}}}
	gen, _ := newTestGenerator(fake)
	p := NewPipeline(gen, "system-key-123456")

	data := testPDF("BT /F1 12 Tf 72 720 Td (John Doe, Software Engineer) Tj ET")
	rec, err := p.Run(context.Background(), data, "")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", rec.Name)
	assert.NotNil(t, rec.Skills)
	assert.Equal(t, 1, fake.calls)
}

func TestPipelineEmptyDocumentSkipsGenerator(t *testing.T) {
	fake := &fakeText{}
	gen, _ := newTestGenerator(fake)
	p := NewPipeline(gen, "system-key-123456")

	data := testPDF("")
	_, err := p.Run(context.Background(), data, "")
	require.ErrorIs(t, err, ErrEmptyDocument)
	assert.Equal(t, 0, fake.calls, "generator must not be invoked for an empty document")
}

func TestPipelineMalformedDocument(t *testing.T) {
	fake := &fakeText{}
	gen, _ := newTestGenerator(fake)
	p := NewPipeline(gen, "system-key-123456")

	_, err := p.Run(context.Background(), []byte("not a pdf"), "")
	require.Error(t, err)
	assert.Equal(t, 0, fake.calls)
}

func TestPipelineUserKeyOverridesDefault(t *testing.T) {
	var seenKey string
	gen := NewGenerator(credentialSpy{seen: &seenKey})
	gen.Sleep = func(d time.Duration) {}
	p := NewPipeline(gen, "system-key-123456")

	data := testPDF("BT /F1 12 Tf 72 720 Td (Jane Roe) Tj ET")
	_, err := p.Run(context.Background(), data, "user-key-abcdef")
	require.NoError(t, err)
	assert.Equal(t, "user-key-abcdef", seenKey)
}

type credentialSpy struct {
	seen *string
}

func (s credentialSpy) GenerateJSON(ctx context.Context, credential, prompt string) (string, error) {
	*s.seen = credential
	return validRecordJSON, nil
}
