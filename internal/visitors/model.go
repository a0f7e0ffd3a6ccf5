package visitors

import "time"

// Visit is one recorded page hit.
type Visit struct {
	ID        string    `json:"id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Path      string    `json:"path"`
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PathCount pairs a request path with its hit count.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Stats are the traffic aggregates surfaced on the staff dashboard.
type Stats struct {
	TotalVisits    int         `json:"totalVisits"`
	UniqueVisitors int         `json:"uniqueVisitors"`
	TopPaths       []PathCount `json:"topPaths"`
	Recent         []Visit     `json:"recent"`
}
