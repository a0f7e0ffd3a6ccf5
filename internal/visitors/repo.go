package visitors

import "context"

type Repo interface {
	Insert(ctx context.Context, visit Visit) error
	Stats(ctx context.Context, topPaths, recent int) (Stats, error)
}
