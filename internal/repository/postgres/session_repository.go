package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tv-keuzehulp-be/internal/mapper"
	"tv-keuzehulp-be/internal/model"
	"tv-keuzehulp-be/internal/repository/contract"
	"tv-keuzehulp-be/pkg/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db     *gorm.DB
	ttl    time.Duration
	mapper *mapper.SessionMapper
	now    func() time.Time
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(db *gorm.DB, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		db:     db,
		ttl:    ttl,
		mapper: mapper.NewSessionMapper(),
		now:    time.Now,
	}
}

// Migrate creates or updates the sessions table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.KeuzehulpSession{})
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	m := r.mapper.ToModel(session, r.now().Add(r.ttl))
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(m).Error
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

// Get treats rows past their expiry as missing; PurgeExpired removes them
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool, error) {
	var m model.KeuzehulpSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", sessionID, r.now()).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return r.mapper.ToSession(&m), true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Delete(&model.KeuzehulpSession{}, "id = ?", sessionID).Error; err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", r.now()).Delete(&model.KeuzehulpSession{})
	return res.RowsAffected, res.Error
}

// RunPurger deletes expired rows every interval until ctx is done
func (r *SessionRepository) RunPurger(ctx context.Context, interval time.Duration, onError func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.PurgeExpired(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
