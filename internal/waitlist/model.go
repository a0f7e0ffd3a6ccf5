package waitlist

import "time"

// Entry is one premium waitlist signup.
type Entry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}
