package services

import (
	"errors"

	"linkboard/app/models"
	"linkboard/app/policy"
	"linkboard/app/repositories"
)

// VoteService owns the vote ledger: one live vote per (post, voter), with the
// aggregate count kept consistent by the repository's atomic cast.
type VoteService struct {
	voteRepo repositories.VoteRepository
	postRepo repositories.PostRepository
}

// NewVoteService creates a new VoteService
func NewVoteService(voteRepo repositories.VoteRepository, postRepo repositories.PostRepository) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		postRepo: postRepo,
	}
}

// CastVote records voter's vote on the post. Casting the value the voter
// already holds retracts it; casting the opposite value replaces it.
func (s *VoteService) CastVote(postID string, voter *models.Profile, value int) (*repositories.CastResult, error) {
	if value != 1 && value != -1 {
		return nil, &models.ValidationError{Field: "value", Reason: "must be 1 or -1"}
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !policy.CanVote(voter, post) {
		if voter == nil {
			return nil, models.ErrUnauthorized
		}
		return nil, models.ErrInvalidState
	}

	return s.voteRepo.Cast(postID, voter.ID, value)
}

// UserVotes returns voter's live vote values for the given posts, keyed by
// post ID, in a single store read. Anonymous callers hold no votes.
func (s *VoteService) UserVotes(postIDs []string, voter *models.Profile) (map[string]int, error) {
	if voter == nil || len(postIDs) == 0 {
		return map[string]int{}, nil
	}
	return s.voteRepo.GetForPosts(postIDs, voter.ID)
}

// UserVote returns voter's live vote value on the post, 0 when there is none
// or the caller is anonymous.
func (s *VoteService) UserVote(postID string, voter *models.Profile) (int, error) {
	if voter == nil {
		return 0, nil
	}
	vote, err := s.voteRepo.Get(postID, voter.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return vote.Value, nil
}
