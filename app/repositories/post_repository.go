package repositories

import (
	"errors"
	"sort"
	"time"

	"linkboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Insert stores a new post
func (r *BadgerPostRepository) Insert(post *models.Post) error {
	data, err := marshalEntity(post)
	if err != nil {
		return storeErr("insert post", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
	return storeErr("insert post", err)
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, storeErr("get post", err)
	}
	return &post, nil
}

// UpdateStatus applies a terminal moderation decision to a pending post. The
// post is re-read and the pending check re-run inside the transaction;
// conflicting transactions are retried so concurrent moderators serialize.
func (r *BadgerPostRepository) UpdateStatus(id string, status models.Status, moderatorID string, decidedAt time.Time) (*models.Post, error) {
	for {
		var post models.Post
		err := r.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(postKey(id))
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return err
			}

			if err := post.ApplyDecision(status, moderatorID, decidedAt); err != nil {
				return err
			}

			data, err := marshalEntity(&post)
			if err != nil {
				return err
			}
			return txn.Set(postKey(id), data)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, storeErr("update post status", err)
		}
		return &post, nil
	}
}

// ListByStatus retrieves all posts with the given status, newest first
func (r *BadgerPostRepository) ListByStatus(status models.Status) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if post.Status == status {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("list posts", err)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}
