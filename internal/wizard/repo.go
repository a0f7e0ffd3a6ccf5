package wizard

import "context"

type Repo interface {
	Insert(ctx context.Context, req Request) error
	ListByUser(ctx context.Context, userID string) ([]Request, error)
}
