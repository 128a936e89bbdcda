package repositories

import (
	"linkboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Create stores a session token for a profile
func (r *BadgerSessionRepository) Create(token, profileID string) error {
	if token == "" {
		return &models.ValidationError{Field: "token", Reason: "required"}
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(token), []byte(profileID))
	})
	return storeErr("create session", err)
}

// GetProfileID resolves a session token to its profile ID
func (r *BadgerSessionRepository) GetProfileID(token string) (string, error) {
	var profileID string

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			profileID = string(val)
			return nil
		})
	})

	if err != nil {
		return "", storeErr("get session", err)
	}
	return profileID, nil
}

// Delete removes a session token
func (r *BadgerSessionRepository) Delete(token string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
	return storeErr("delete session", err)
}
