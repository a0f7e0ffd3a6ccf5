package visitors

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, visit Visit) error {
	const query = `
INSERT INTO visitors (id, ip, user_agent, path, session_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		visit.ID,
		visit.IP,
		visit.UserAgent,
		visit.Path,
		nullableString(visit.SessionID),
		visit.CreatedAt,
	)
	return err
}

func (r *PGRepo) Stats(ctx context.Context, topPaths, recent int) (Stats, error) {
	var stats Stats

	const countQuery = `
SELECT count(*), count(DISTINCT ip) FROM visitors`
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&stats.TotalVisits, &stats.UniqueVisitors); err != nil {
		return Stats{}, err
	}

	const topQuery = `
SELECT path, count(*) AS hits
FROM visitors
GROUP BY path
ORDER BY hits DESC, path
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, topQuery, topPaths)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()
	stats.TopPaths = []PathCount{}
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return Stats{}, err
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	const recentQuery = `
SELECT id, ip, user_agent, path, session_id, created_at
FROM visitors
ORDER BY created_at DESC
LIMIT $1`
	recentRows, err := r.DB.QueryContext(ctx, recentQuery, recent)
	if err != nil {
		return Stats{}, err
	}
	defer recentRows.Close()
	stats.Recent = []Visit{}
	for recentRows.Next() {
		var visit Visit
		var sessionID sql.NullString
		if err := recentRows.Scan(&visit.ID, &visit.IP, &visit.UserAgent, &visit.Path, &sessionID, &visit.CreatedAt); err != nil {
			return Stats{}, err
		}
		if sessionID.Valid {
			visit.SessionID = sessionID.String
		}
		stats.Recent = append(stats.Recent, visit)
	}
	if err := recentRows.Err(); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
