package controllers

import (
	"encoding/json"
	"net/http"

	"linkboard/app/middleware"
	"linkboard/app/models"
	"linkboard/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts and the moderation queue
type PostController struct {
	postService *services.PostService
	voteService *services.VoteService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, voteService *services.VoteService) *PostController {
	return &PostController{
		postService: postService,
		voteService: voteService,
	}
}

// postResponse is a feed item with the caller's own vote attached.
type postResponse struct {
	*services.FeedItem
	UserVote int `json:"user_vote"`
}

// Index handles GET /api/posts: the approved feed, newest first
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	items, err := pc.postService.ListApproved()
	if err != nil {
		sendError(w, r, err)
		return
	}

	identity := middleware.IdentityFrom(r.Context())
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	userVotes, err := pc.voteService.UserVotes(ids, identity)
	if err != nil {
		sendError(w, r, err)
		return
	}

	resp := make([]*postResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, &postResponse{FeedItem: item, UserVote: userVotes[item.ID]})
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": resp})
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())

	item, err := pc.postService.GetPost(mux.Vars(r)["id"], identity)
	if err != nil {
		sendError(w, r, err)
		return
	}

	userVote, err := pc.voteService.UserVote(item.ID, identity)
	if err != nil {
		sendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, &postResponse{FeedItem: item, UserVote: userVote})
}

// Create handles POST /api/posts: a new submission, entering the pending queue
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	post, err := pc.postService.Submit(input, middleware.IdentityFrom(r.Context()))
	if err != nil {
		sendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Pending handles GET /api/admin/pending: the moderation queue
func (pc *PostController) Pending(w http.ResponseWriter, r *http.Request) {
	items, err := pc.postService.ListPending(middleware.IdentityFrom(r.Context()))
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": items})
}

// Decide handles POST /api/posts/{id}/decision
func (pc *PostController) Decide(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	post, err := pc.postService.Decide(
		mux.Vars(r)["id"],
		models.Status(body.Decision),
		middleware.IdentityFrom(r.Context()),
	)
	if err != nil {
		sendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, post)
}
