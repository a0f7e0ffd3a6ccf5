package portfolio

import (
	"context"
	"strings"

	"portfolio-backend/internal/extract"
)

// Pipeline composes text extraction and structured-data generation. It is
// the single error-reporting boundary for the upload flow: every failure
// kind from the extractor or generator propagates to the caller intact.
type Pipeline struct {
	Generator  *Generator
	DefaultKey string
}

// NewPipeline constructs a Pipeline with the system default credential.
func NewPipeline(gen *Generator, defaultKey string) *Pipeline {
	return &Pipeline{Generator: gen, DefaultKey: defaultKey}
}

// Run extracts text from the PDF bytes and, if any text came out, asks the
// generator for a structured record. An empty extraction fails with
// ErrEmptyDocument before any external call is made.
//
// userKey, when non-empty, overrides the system default credential.
func (p *Pipeline) Run(ctx context.Context, data []byte, userKey string) (Record, error) {
	text, err := extract.PDF(data)
	if err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Record{}, ErrEmptyDocument
	}

	cred := Credential{Key: p.DefaultKey}
	if strings.TrimSpace(userKey) != "" {
		cred = Credential{Key: userKey, UserSupplied: true}
	}

	return p.Generator.Generate(ctx, text, cred)
}
