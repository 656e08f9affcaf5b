package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fsanano/storefront/internal/model"
)

// SessionRepository persists the session token and user id under the
// user_token and user_id keys.
type SessionRepository struct {
	kv KeyValueStore
}

func NewSessionRepository(kv KeyValueStore) *SessionRepository {
	return &SessionRepository{kv: kv}
}

func (r *SessionRepository) Save(ctx context.Context, s model.Session) error {
	err := r.kv.SetValues(ctx, map[string]string{
		model.KeyUserToken: s.Token,
		model.KeyUserID:    strconv.Itoa(s.UserID),
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// UserID returns the persisted user id. ok is false when none was stored or
// the stored value is not an integer.
func (r *SessionRepository) UserID(ctx context.Context) (id int, ok bool, err error) {
	raw, err := r.kv.Get(ctx, model.KeyUserID)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return id, true, nil
}

// Load reads back the whole persisted session.
func (r *SessionRepository) Load(ctx context.Context) (model.Session, error) {
	token, err := r.kv.Get(ctx, model.KeyUserToken)
	if err != nil {
		return model.Session{}, err
	}
	id, ok, err := r.UserID(ctx)
	if err != nil {
		return model.Session{}, err
	}
	if !ok {
		return model.Session{}, ErrNotFound
	}
	return model.Session{Token: token, UserID: id}, nil
}
