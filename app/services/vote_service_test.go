package services

import (
	"fmt"
	"sync"
	"testing"

	"linkboard/app/models"
	"linkboard/app/repositories"
	"linkboard/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voteFixture struct {
	postRepo *mock.PostRepository
	voteRepo *mock.VoteRepository
	service  *VoteService
	approved *models.Post
	pending  *models.Post
}

func newVoteFixture(t *testing.T) *voteFixture {
	t.Helper()

	postRepo := mock.NewPostRepository()
	voteRepo := mock.NewVoteRepository(postRepo)

	approved := &models.Post{Title: "Approved post", AuthorID: "author-1"}
	approved.BeforeCreate()
	approved.Status = models.StatusApproved
	require.NoError(t, postRepo.Insert(approved))

	pending := &models.Post{Title: "Pending post", AuthorID: "author-1"}
	pending.BeforeCreate()
	require.NoError(t, postRepo.Insert(pending))

	return &voteFixture{
		postRepo: postRepo,
		voteRepo: voteRepo,
		service:  NewVoteService(voteRepo, postRepo),
		approved: approved,
		pending:  pending,
	}
}

// checkLedger asserts the two ledger invariants: at most one vote per
// (post, voter) and an aggregate equal to the sum of live vote values.
func checkLedger(t *testing.T, f *voteFixture, postID string) {
	t.Helper()

	votes, err := f.voteRepo.ListByPost(postID)
	require.NoError(t, err)

	seen := make(map[string]bool)
	sum := 0
	for _, vote := range votes {
		require.False(t, seen[vote.VoterID], "voter %s has more than one vote", vote.VoterID)
		seen[vote.VoterID] = true
		sum += vote.Value
	}

	post, err := f.postRepo.GetByID(postID)
	require.NoError(t, err)
	assert.Equal(t, sum, post.VoteCount, "aggregate must equal sum of live votes")
}

func voter(id string) *models.Profile {
	return &models.Profile{ID: id, Username: "voter-" + id}
}

func TestVoteServiceCastVote(t *testing.T) {
	t.Run("first vote counts", func(t *testing.T) {
		f := newVoteFixture(t)

		result, err := f.service.CastVote(f.approved.ID, voter("u1"), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, result.VoteCount)
		assert.Equal(t, 1, result.UserVote)
		checkLedger(t, f, f.approved.ID)
	})

	t.Run("toggle law", func(t *testing.T) {
		f := newVoteFixture(t)

		_, err := f.service.CastVote(f.approved.ID, voter("u1"), 1)
		require.NoError(t, err)

		result, err := f.service.CastVote(f.approved.ID, voter("u1"), 1)
		require.NoError(t, err)
		assert.Equal(t, 0, result.VoteCount, "second same-value cast returns aggregate to its prior value")
		assert.Equal(t, 0, result.UserVote)

		_, err = f.voteRepo.Get(f.approved.ID, "u1")
		assert.ErrorIs(t, err, repositories.ErrNotFound, "toggle-off removes the vote row")
		checkLedger(t, f, f.approved.ID)
	})

	t.Run("swing law", func(t *testing.T) {
		f := newVoteFixture(t)

		first, err := f.service.CastVote(f.approved.ID, voter("u1"), 1)
		require.NoError(t, err)

		second, err := f.service.CastVote(f.approved.ID, voter("u1"), -1)
		require.NoError(t, err)
		assert.Equal(t, first.VoteCount-2, second.VoteCount, "opposite revote swings aggregate by exactly -2")
		assert.Equal(t, -1, second.UserVote)
		checkLedger(t, f, f.approved.ID)
	})

	t.Run("three voters", func(t *testing.T) {
		f := newVoteFixture(t)

		for _, cast := range []struct {
			voterID string
			value   int
		}{
			{"u1", 1}, {"u2", 1}, {"u3", -1},
		} {
			_, err := f.service.CastVote(f.approved.ID, voter(cast.voterID), cast.value)
			require.NoError(t, err)
		}

		post, err := f.postRepo.GetByID(f.approved.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, post.VoteCount)
		checkLedger(t, f, f.approved.ID)
	})

	t.Run("voting on a pending post fails", func(t *testing.T) {
		f := newVoteFixture(t)

		_, err := f.service.CastVote(f.pending.ID, voter("u1"), 1)
		assert.ErrorIs(t, err, models.ErrInvalidState)

		post, err := f.postRepo.GetByID(f.pending.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, post.VoteCount)
	})

	t.Run("anonymous voting fails", func(t *testing.T) {
		f := newVoteFixture(t)

		_, err := f.service.CastVote(f.approved.ID, nil, 1)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("invalid value fails", func(t *testing.T) {
		f := newVoteFixture(t)

		for _, value := range []int{0, 2, -2} {
			_, err := f.service.CastVote(f.approved.ID, voter("u1"), value)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "value", verr.Field)
		}
	})

	t.Run("unknown post fails", func(t *testing.T) {
		f := newVoteFixture(t)

		_, err := f.service.CastVote("missing", voter("u1"), 1)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestVoteServiceUserVote(t *testing.T) {
	f := newVoteFixture(t)

	value, err := f.service.UserVote(f.approved.ID, voter("u1"))
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	value, err = f.service.UserVote(f.approved.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	_, err = f.service.CastVote(f.approved.ID, voter("u1"), -1)
	require.NoError(t, err)

	value, err = f.service.UserVote(f.approved.ID, voter("u1"))
	require.NoError(t, err)
	assert.Equal(t, -1, value)
}

func TestVoteServiceUserVotes(t *testing.T) {
	f := newVoteFixture(t)

	second := &models.Post{Title: "Second approved", AuthorID: "author-1"}
	second.BeforeCreate()
	second.Status = models.StatusApproved
	require.NoError(t, f.postRepo.Insert(second))

	_, err := f.service.CastVote(f.approved.ID, voter("u1"), 1)
	require.NoError(t, err)
	_, err = f.service.CastVote(second.ID, voter("u1"), -1)
	require.NoError(t, err)
	_, err = f.service.CastVote(f.approved.ID, voter("u2"), -1)
	require.NoError(t, err)

	t.Run("one read covers the whole feed", func(t *testing.T) {
		votes, err := f.service.UserVotes([]string{f.approved.ID, second.ID, "unvoted"}, voter("u1"))
		require.NoError(t, err)
		assert.Equal(t, map[string]int{f.approved.ID: 1, second.ID: -1}, votes)
	})

	t.Run("anonymous callers hold no votes", func(t *testing.T) {
		votes, err := f.service.UserVotes([]string{f.approved.ID, second.ID}, nil)
		require.NoError(t, err)
		assert.Empty(t, votes)
	})

	t.Run("empty feed needs no read", func(t *testing.T) {
		votes, err := f.service.UserVotes(nil, voter("u1"))
		require.NoError(t, err)
		assert.Empty(t, votes)
	})
}

func TestVoteServiceConcurrentVoters(t *testing.T) {
	f := newVoteFixture(t)

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value := 1
			if i%5 == 0 {
				value = -1
			}
			_, err := f.service.CastVote(f.approved.ID, voter(fmt.Sprintf("u%d", i)), value)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// 40 upvotes, 10 downvotes: no cast may be lost.
	post, err := f.postRepo.GetByID(f.approved.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, post.VoteCount)
	checkLedger(t, f, f.approved.ID)
}

func TestVoteServiceConcurrentSameVoter(t *testing.T) {
	f := newVoteFixture(t)

	const casts = 20
	var wg sync.WaitGroup
	for i := 0; i < casts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CastVote(f.approved.ID, voter("u1"), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Racing casts from one voter may land in any order, but the ledger must
	// end consistent: zero or one row, aggregate matching.
	checkLedger(t, f, f.approved.ID)
	post, err := f.postRepo.GetByID(f.approved.ID)
	require.NoError(t, err)
	assert.Contains(t, []int{0, 1}, post.VoteCount)
}
