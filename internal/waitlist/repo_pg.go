package waitlist

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO premium_waitlist (id, email, full_name, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING`
	res, err := r.DB.ExecContext(ctx, query, entry.ID, entry.Email, entry.FullName, entry.CreatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicate
	}
	return nil
}
