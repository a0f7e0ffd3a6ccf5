package users

import "time"

type User struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"fullName"`
	GivenName             string    `json:"givenName"`
	FamilyName            string    `json:"familyName"`
	PictureURL            string    `json:"pictureUrl"`
	GeminiAPIKey          string    `json:"-"`
	HasGeneratedPortfolio bool      `json:"hasGeneratedPortfolio"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// Stats are the aggregate user counts surfaced on the staff dashboard.
type Stats struct {
	Total          int `json:"total"`
	WithPortfolios int `json:"withPortfolios"`
}
