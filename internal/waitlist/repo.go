package waitlist

import "context"

var ErrDuplicate = errDuplicate{}

type errDuplicate struct{}

func (errDuplicate) Error() string { return "email already on waitlist" }

type Repo interface {
	Insert(ctx context.Context, entry Entry) error
}
