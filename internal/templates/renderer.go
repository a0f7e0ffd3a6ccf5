package templates

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"portfolio-backend/internal/portfolio"
)

// ErrTemplateFilesMissing reports a slug with no embedded template files.
var ErrTemplateFilesMissing = errors.New("template files not found")

// Renderer substitutes a portfolio record into the embedded HTML templates
// and optionally bundles the result with the template's static assets.
type Renderer struct {
	fs fs.FS
}

// NewRenderer constructs a Renderer over the embedded template files.
func NewRenderer() *Renderer {
	return &Renderer{fs: assetsFS}
}

// Render produces the populated index.html for the given template slug.
func (r *Renderer) Render(slug string, rec portfolio.Record) ([]byte, error) {
	raw, err := fs.ReadFile(r.fs, path.Join("assets", slug, "index.html"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateFilesMissing, slug)
	}

	tmpl, err := template.New("index.html").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", slug, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("render template %s: %w", slug, err)
	}
	return buf.Bytes(), nil
}

// Bundle renders the template and packs it with its static assets into an
// in-memory zip archive ready for download.
func (r *Renderer) Bundle(slug string, rec portfolio.Record) ([]byte, error) {
	rendered, err := r.Render(slug, rec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("index.html")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(rendered); err != nil {
		return nil, err
	}

	root := path.Join("assets", slug)
	err = fs.WalkDir(r.fs, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := relPath(root, p)
		if relErr != nil {
			return relErr
		}
		if rel == "index.html" {
			return nil
		}
		data, readErr := fs.ReadFile(r.fs, p)
		if readErr != nil {
			return readErr
		}
		entry, createErr := zw.Create(rel)
		if createErr != nil {
			return createErr
		}
		_, writeErr := entry.Write(data)
		return writeErr
	})
	if err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func relPath(root, p string) (string, error) {
	if p == root {
		return ".", nil
	}
	if len(p) <= len(root)+1 || p[:len(root)+1] != root+"/" {
		return "", fmt.Errorf("path %s outside root %s", p, root)
	}
	return p[len(root)+1:], nil
}
