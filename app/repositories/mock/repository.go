package mock

import (
	"sort"
	"sync"
	"time"

	"linkboard/app/models"
	"linkboard/app/repositories"
)

// PostRepository is an in-memory PostRepository for tests.
type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
}

// VoteRepository is an in-memory VoteRepository for tests. It needs the
// PostRepository it shares a store with, because a cast mutates the vote row
// and the post's aggregate count together.
type VoteRepository struct {
	posts *PostRepository
	votes map[string]*models.Vote
	mutex sync.Mutex
}

// ProfileRepository is an in-memory ProfileRepository for tests.
type ProfileRepository struct {
	profiles map[string]*models.Profile
	byName   map[string]string
	mutex    sync.RWMutex
}

// SessionRepository is an in-memory SessionRepository for tests.
type SessionRepository struct {
	sessions map[string]string
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func NewVoteRepository(posts *PostRepository) *VoteRepository {
	return &VoteRepository{
		posts: posts,
		votes: make(map[string]*models.Vote),
	}
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]*models.Profile),
		byName:   make(map[string]string),
	}
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]string)}
}

// PostRepository implementation

func (m *PostRepository) Insert(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) UpdateStatus(id string, status models.Status, moderatorID string, decidedAt time.Time) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	if err := post.ApplyDecision(status, moderatorID, decidedAt); err != nil {
		return nil, err
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) ListByStatus(status models.Status) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		if post.Status == status {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// VoteRepository implementation

func voteID(postID, voterID string) string {
	return postID + ":" + voterID
}

func (m *VoteRepository) Get(postID, voterID string) (*models.Vote, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	vote, exists := m.votes[voteID(postID, voterID)]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *vote
	return &copied, nil
}

func (m *VoteRepository) GetForPosts(postIDs []string, voterID string) (map[string]int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	values := make(map[string]int, len(postIDs))
	for _, postID := range postIDs {
		if vote, exists := m.votes[voteID(postID, voterID)]; exists {
			values[postID] = vote.Value
		}
	}
	return values, nil
}

func (m *VoteRepository) ListByPost(postID string) ([]*models.Vote, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var votes []*models.Vote
	for _, vote := range m.votes {
		if vote.PostID == postID {
			copied := *vote
			votes = append(votes, &copied)
		}
	}
	return votes, nil
}

func (m *VoteRepository) Cast(postID, voterID string, value int) (*repositories.CastResult, error) {
	if value != 1 && value != -1 {
		return nil, &models.ValidationError{Field: "value", Reason: "must be 1 or -1"}
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts.mutex.Lock()
	defer m.posts.mutex.Unlock()

	post, exists := m.posts.posts[postID]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	if post.Status != models.StatusApproved {
		return nil, models.ErrInvalidState
	}

	key := voteID(postID, voterID)
	existing := m.votes[key]
	action, delta, net := models.ResolveVote(existing, value)
	switch action {
	case models.VoteDelete:
		delete(m.votes, key)
	default:
		vote := &models.Vote{
			PostID:    postID,
			VoterID:   voterID,
			Value:     value,
			CreatedAt: time.Now().UTC(),
		}
		if existing != nil {
			vote.CreatedAt = existing.CreatedAt
		}
		m.votes[key] = vote
	}

	post.VoteCount += delta
	return &repositories.CastResult{VoteCount: post.VoteCount, UserVote: net}, nil
}

// ProfileRepository implementation

func (m *ProfileRepository) Insert(profile *models.Profile) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, taken := m.byName[profile.Username]; taken {
		return &models.ValidationError{Field: "username", Reason: "already taken"}
	}
	copied := *profile
	m.profiles[profile.ID] = &copied
	m.byName[profile.Username] = profile.ID
	return nil
}

func (m *ProfileRepository) GetByID(id string) (*models.Profile, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	profile, exists := m.profiles[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (m *ProfileRepository) GetByUsername(username string) (*models.Profile, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	id, exists := m.byName[username]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *m.profiles[id]
	return &copied, nil
}

func (m *ProfileRepository) Update(profile *models.Profile) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.profiles[profile.ID]; !exists {
		return repositories.ErrNotFound
	}
	copied := *profile
	m.profiles[profile.ID] = &copied
	return nil
}

// SessionRepository implementation

func (m *SessionRepository) Create(token, profileID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.sessions[token] = profileID
	return nil
}

func (m *SessionRepository) GetProfileID(token string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	profileID, exists := m.sessions[token]
	if !exists {
		return "", repositories.ErrNotFound
	}
	return profileID, nil
}

func (m *SessionRepository) Delete(token string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, token)
	return nil
}
