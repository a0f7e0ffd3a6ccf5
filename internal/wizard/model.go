package wizard

import (
	"time"

	"portfolio-backend/internal/portfolio"
)

// Request is one generation run: who asked, where the uploaded resume was
// archived and what came out of the generator.
type Request struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	SessionID string           `json:"sessionId"`
	ResumeKey string           `json:"resumeKey"`
	Record    portfolio.Record `json:"record"`
	CreatedAt time.Time        `json:"createdAt"`
}
