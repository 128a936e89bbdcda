package controllers

import (
	"encoding/json"
	"net/http"

	"linkboard/app/middleware"
	"linkboard/app/services"

	"github.com/gorilla/mux"
)

// VoteController handles HTTP requests for votes
type VoteController struct {
	voteService *services.VoteService
}

// NewVoteController creates a new VoteController
func NewVoteController(voteService *services.VoteService) *VoteController {
	return &VoteController{voteService: voteService}
}

// Cast handles POST /api/posts/{id}/vote. Sending the value the caller
// already holds retracts the vote; the response carries the confirmed
// aggregate and the caller's net value.
func (vc *VoteController) Cast(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := vc.voteService.CastVote(
		mux.Vars(r)["id"],
		middleware.IdentityFrom(r.Context()),
		body.Value,
	)
	if err != nil {
		sendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, result)
}
