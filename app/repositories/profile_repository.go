package repositories

import (
	"linkboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerProfileRepository implements ProfileRepository using BadgerDB
type BadgerProfileRepository struct {
	db *badger.DB
}

// NewBadgerProfileRepository creates a new BadgerProfileRepository
func NewBadgerProfileRepository(db *badger.DB) *BadgerProfileRepository {
	return &BadgerProfileRepository{db: db}
}

// Insert stores a new profile. The username index is written in the same
// transaction, so a taken username fails the whole insert.
func (r *BadgerProfileRepository) Insert(profile *models.Profile) error {
	data, err := marshalEntity(profile)
	if err != nil {
		return storeErr("insert profile", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(usernameKey(profile.Username))
		if err == nil {
			return &models.ValidationError{Field: "username", Reason: "already taken"}
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if err := txn.Set(usernameKey(profile.Username), []byte(profile.ID)); err != nil {
			return err
		}
		return txn.Set(profileKey(profile.ID), data)
	})
	return storeErr("insert profile", err)
}

// GetByID retrieves a profile by ID
func (r *BadgerProfileRepository) GetByID(id string) (*models.Profile, error) {
	var profile models.Profile

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &profile)
		})
	})

	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return &profile, nil
}

// GetByUsername retrieves a profile through the username index
func (r *BadgerProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	var id string

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})

	if err != nil {
		return nil, storeErr("get profile by username", err)
	}
	return r.GetByID(id)
}

// Update overwrites an existing profile
func (r *BadgerProfileRepository) Update(profile *models.Profile) error {
	data, err := marshalEntity(profile)
	if err != nil {
		return storeErr("update profile", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(profileKey(profile.ID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Set(profileKey(profile.ID), data)
	})
	return storeErr("update profile", err)
}
