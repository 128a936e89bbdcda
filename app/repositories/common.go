package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"linkboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	VoteKeyPrefix    = "vote:"
	ProfileKeyPrefix = "profile:"
	SessionKeyPrefix = "session:"

	// Username index keys, mapping username -> profile ID
	UsernameKeyPrefix = "username:"
)

var (
	ErrNotFound = errors.New("record not found")
)

// StoreError wraps an opaque backing-store failure. Expected domain outcomes
// (not found, invalid transition, invalid state, validation) are never
// wrapped; everything else is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("backing store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// storeErr wraps err in a StoreError unless it is an expected domain outcome.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, models.ErrInvalidTransition) ||
		errors.Is(err, models.ErrInvalidState) {
		return err
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// Open opens the badger store at path with the options used everywhere in
// the app.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	return badger.Open(opts)
}

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

func voteKey(postID, voterID string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", VoteKeyPrefix, postID, voterID))
}

func profileKey(id string) []byte {
	return []byte(ProfileKeyPrefix + id)
}

func usernameKey(username string) []byte {
	return []byte(UsernameKeyPrefix + username)
}

func sessionKey(token string) []byte {
	return []byte(SessionKeyPrefix + token)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
