package templates

import "time"

// Template is one selectable portfolio look.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Defaults are the built-in templates, used to seed the repository and as
// the listing fallback when the database has not been populated.
func Defaults() []Template {
	return []Template{
		{Name: "Terminal", Slug: "terminal", Description: "Retro hacker terminal with green monospace text", Active: true},
		{Name: "Renaissance", Slug: "renaissance", Description: "Classical art-inspired design with ornate typography", Active: true},
		{Name: "Newspaper", Slug: "newspaper", Description: "Classic newspaper layout with multi-column design", Active: true},
	}
}
