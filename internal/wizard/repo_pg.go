package wizard

import (
	"context"
	"database/sql"
	"encoding/json"

	"portfolio-backend/internal/portfolio"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, req Request) error {
	record, err := json.Marshal(req.Record)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO portfolio_requests (id, user_id, session_id, resume_key, record, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.DB.ExecContext(ctx, query,
		req.ID,
		nullableString(req.UserID),
		req.SessionID,
		nullableString(req.ResumeKey),
		record,
		req.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Request, error) {
	const query = `
SELECT id, user_id, session_id, resume_key, record, created_at
FROM portfolio_requests
WHERE user_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		var req Request
		var uid sql.NullString
		var resumeKey sql.NullString
		var record []byte
		if err := rows.Scan(&req.ID, &uid, &req.SessionID, &resumeKey, &record, &req.CreatedAt); err != nil {
			return nil, err
		}
		if uid.Valid {
			req.UserID = uid.String
		}
		if resumeKey.Valid {
			req.ResumeKey = resumeKey.String
		}
		var rec portfolio.Record
		if err := json.Unmarshal(record, &rec); err != nil {
			return nil, err
		}
		rec.Normalize()
		req.Record = rec
		out = append(out, req)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
