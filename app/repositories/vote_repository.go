package repositories

import (
	"errors"
	"time"

	"linkboard/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerVoteRepository implements VoteRepository using BadgerDB
type BadgerVoteRepository struct {
	db *badger.DB
}

// NewBadgerVoteRepository creates a new BadgerVoteRepository
func NewBadgerVoteRepository(db *badger.DB) *BadgerVoteRepository {
	return &BadgerVoteRepository{db: db}
}

// Get retrieves the voter's live vote on a post
func (r *BadgerVoteRepository) Get(postID, voterID string) (*models.Vote, error) {
	var vote models.Vote

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(voteKey(postID, voterID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &vote)
		})
	})

	if err != nil {
		return nil, storeErr("get vote", err)
	}
	return &vote, nil
}

// GetForPosts retrieves the voter's live vote values for all the given posts
// in a single read transaction
func (r *BadgerVoteRepository) GetForPosts(postIDs []string, voterID string) (map[string]int, error) {
	values := make(map[string]int, len(postIDs))

	err := r.db.View(func(txn *badger.Txn) error {
		for _, postID := range postIDs {
			item, err := txn.Get(voteKey(postID, voterID))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			var vote models.Vote
			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &vote)
			}); err != nil {
				return err
			}
			values[postID] = vote.Value
		}
		return nil
	})

	if err != nil {
		return nil, storeErr("get votes", err)
	}
	return values, nil
}

// ListByPost retrieves all live votes on a post
func (r *BadgerVoteRepository) ListByPost(postID string) ([]*models.Vote, error) {
	var votes []*models.Vote

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(VoteKeyPrefix + postID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var vote models.Vote
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &vote)
			})
			if err != nil {
				return err
			}
			votes = append(votes, &vote)
		}
		return nil
	})

	if err != nil {
		return nil, storeErr("list votes", err)
	}
	return votes, nil
}

// Cast applies the toggle/replace vote rule for (postID, voterID) in a single
// transaction: the vote row and the post's aggregate count change together or
// not at all. Conflicting transactions are retried, so concurrent casts from
// the same voter settle on exactly one outcome and casts from different
// voters are never lost.
func (r *BadgerVoteRepository) Cast(postID, voterID string, value int) (*CastResult, error) {
	if value != 1 && value != -1 {
		return nil, &models.ValidationError{Field: "value", Reason: "must be 1 or -1"}
	}

	for {
		var result CastResult
		err := r.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(postKey(postID))
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			var post models.Post
			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return err
			}
			if post.Status != models.StatusApproved {
				return models.ErrInvalidState
			}

			var existing *models.Vote
			item, err = txn.Get(voteKey(postID, voterID))
			if err != nil && err != badger.ErrKeyNotFound {
				return err
			}
			if err == nil {
				var vote models.Vote
				if err := item.Value(func(val []byte) error {
					return unmarshalEntity(val, &vote)
				}); err != nil {
					return err
				}
				existing = &vote
			}

			action, delta, net := models.ResolveVote(existing, value)
			switch action {
			case models.VoteDelete:
				if err := txn.Delete(voteKey(postID, voterID)); err != nil {
					return err
				}
			default:
				vote := models.Vote{
					PostID:    postID,
					VoterID:   voterID,
					Value:     value,
					CreatedAt: time.Now().UTC(),
				}
				if existing != nil {
					vote.CreatedAt = existing.CreatedAt
				}
				data, err := marshalEntity(&vote)
				if err != nil {
					return err
				}
				if err := txn.Set(voteKey(postID, voterID), data); err != nil {
					return err
				}
			}

			post.VoteCount += delta
			data, err := marshalEntity(&post)
			if err != nil {
				return err
			}
			if err := txn.Set(postKey(postID), data); err != nil {
				return err
			}

			result = CastResult{VoteCount: post.VoteCount, UserVote: net}
			return nil
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, storeErr("cast vote", err)
		}
		return &result, nil
	}
}
