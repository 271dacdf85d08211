package contract

import (
	"context"

	"tv-keuzehulp-be/pkg/store"
)

// SessionRepository stores shopper sessions keyed by the cookie id.
// Implementations hand out copies; concurrent writers for one id are
// last-write-wins.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*store.Session, bool, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, id string) error
}
