package repositories

import (
	"testing"

	"linkboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func newStoredPost(t *testing.T, repo *BadgerPostRepository, status models.Status) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    "A stored post",
		AuthorID: "author-1",
	}
	post.BeforeCreate()
	post.Status = status
	require.NoError(t, repo.Insert(post))
	return post
}
