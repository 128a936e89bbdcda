package services

import (
	"errors"
	"strings"
	"time"

	"linkboard/app/models"
	"linkboard/app/policy"
	"linkboard/app/repositories"
)

// PostService owns the post lifecycle: submission, the pending review queue,
// and terminal moderation decisions.
type PostService struct {
	postRepo    repositories.PostRepository
	profileRepo repositories.ProfileRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		profileRepo: profileRepo,
	}
}

// SubmitInput carries the fields of a new submission.
type SubmitInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// FeedItem is a post joined with its author's display name. The name comes
// from the profile lookup, never from fields assumed present on the post.
type FeedItem struct {
	*models.Post
	Username string `json:"username"`
}

// Submit validates the input and stores a new pending post authored by author.
func (s *PostService) Submit(input SubmitInput, author *models.Profile) (*models.Post, error) {
	if !policy.CanSubmit(author) {
		return nil, models.ErrUnauthorized
	}

	post := &models.Post{
		Title:    strings.TrimSpace(input.Title),
		Body:     strings.TrimSpace(input.Body),
		URL:      strings.TrimSpace(input.URL),
		AuthorID: author.ID,
	}
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Insert(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Decide applies a terminal moderation decision to a pending post. A post
// already decided fails with ErrInvalidTransition and keeps its first
// decision.
func (s *PostService) Decide(postID string, decision models.Status, moderator *models.Profile) (*models.Post, error) {
	if !policy.CanModerate(moderator) {
		return nil, models.ErrUnauthorized
	}
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return nil, &models.ValidationError{Field: "decision", Reason: "must be approved or rejected"}
	}
	return s.postRepo.UpdateStatus(postID, decision, moderator.ID, time.Now().UTC())
}

// GetPost retrieves a post with its author's display name. Posts outside the
// public feed are served only to their author and to moderators; everyone
// else sees not found, so undecided submissions never leak through their ID.
func (s *PostService) GetPost(id string, viewer *models.Profile) (*FeedItem, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPost(viewer, post) {
		return nil, repositories.ErrNotFound
	}
	items, err := s.withAuthors([]*models.Post{post})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// ListApproved returns the public feed, newest first.
func (s *PostService) ListApproved() ([]*FeedItem, error) {
	posts, err := s.postRepo.ListByStatus(models.StatusApproved)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(posts)
}

// ListPending returns the moderation queue, newest first. Only moderators may
// read it.
func (s *PostService) ListPending(moderator *models.Profile) ([]*FeedItem, error) {
	if !policy.CanModerate(moderator) {
		return nil, models.ErrUnauthorized
	}
	posts, err := s.postRepo.ListByStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(posts)
}

// withAuthors joins each post with its author's username. A missing profile
// leaves the name empty rather than failing the whole read.
func (s *PostService) withAuthors(posts []*models.Post) ([]*FeedItem, error) {
	items := make([]*FeedItem, 0, len(posts))
	for _, post := range posts {
		item := &FeedItem{Post: post}
		profile, err := s.profileRepo.GetByID(post.AuthorID)
		if err == nil {
			item.Username = profile.Username
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
