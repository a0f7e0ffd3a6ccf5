package templates

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"portfolio-backend/internal/portfolio"
)

func sampleRecord() portfolio.Record {
	rec := portfolio.Record{
		Name:    "Ada Lovelace",
		Tagline: "Analyst and Programmer",
		Bio:     "Wrote the first published algorithm intended for a machine.",
		Skills:  []string{"Mathematics", "Analytical Engines"},
		Experience: []portfolio.Experience{
			{Role: "Collaborator", Company: "Babbage & Co", Duration: "1842-1843", Description: "Translated and annotated the Menabrea memoir."},
		},
	}
	rec.Contact.Email = "ada@example.com"
	rec.Normalize()
	return rec
}

func TestRenderSubstitutesRecordFields(t *testing.T) {
	r := NewRenderer()

	for _, tmpl := range Defaults() {
		out, err := r.Render(tmpl.Slug, sampleRecord())
		if err != nil {
			t.Fatalf("render %s: %v", tmpl.Slug, err)
		}
		html := string(out)
		if !strings.Contains(html, "Ada Lovelace") {
			t.Errorf("%s: rendered output missing name", tmpl.Slug)
		}
		if !strings.Contains(html, "Analyst and Programmer") {
			t.Errorf("%s: rendered output missing tagline", tmpl.Slug)
		}
		if !strings.Contains(html, "ada@example.com") {
			t.Errorf("%s: rendered output missing contact email", tmpl.Slug)
		}
		if strings.Contains(html, "{{") {
			t.Errorf("%s: rendered output contains unexecuted template actions", tmpl.Slug)
		}
	}
}

func TestRenderEscapesRecordContent(t *testing.T) {
	r := NewRenderer()

	rec := sampleRecord()
	rec.Bio = `<script>alert("x")</script>`
	out, err := r.Render("terminal", rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if bytes.Contains(out, []byte("<script>alert")) {
		t.Fatal("record content rendered without HTML escaping")
	}
}

func TestRenderUnknownSlug(t *testing.T) {
	r := NewRenderer()

	if _, err := r.Render("brutalist", sampleRecord()); !errors.Is(err, ErrTemplateFilesMissing) {
		t.Fatalf("expected ErrTemplateFilesMissing, got %v", err)
	}
}

func TestBundleContainsRenderedPageAndAssets(t *testing.T) {
	r := NewRenderer()

	data, err := r.Bundle("terminal", sampleRecord())
	if err != nil {
		t.Fatalf("bundle: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}

	files := map[string]bool{}
	for _, f := range zr.File {
		files[f.Name] = true
	}
	if !files["index.html"] {
		t.Fatal("bundle missing index.html")
	}
	if !files["style.css"] {
		t.Fatal("bundle missing style.css")
	}

	rc, err := zr.Open("index.html")
	if err != nil {
		t.Fatalf("open index.html: %v", err)
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		t.Fatalf("read index.html: %v", err)
	}
	if !strings.Contains(buf.String(), "Ada Lovelace") {
		t.Fatal("bundled index.html is not the rendered page")
	}
}

func TestBundleUnknownSlug(t *testing.T) {
	r := NewRenderer()

	if _, err := r.Bundle("brutalist", sampleRecord()); !errors.Is(err, ErrTemplateFilesMissing) {
		t.Fatalf("expected ErrTemplateFilesMissing, got %v", err)
	}
}
