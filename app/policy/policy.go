// Package policy holds the access predicates consulted before any lifecycle
// or vote transition. All functions are pure; a nil profile means the caller
// is anonymous.
package policy

import "linkboard/app/models"

// CanModerate reports whether identity may approve or reject pending posts.
func CanModerate(identity *models.Profile) bool {
	return identity != nil && identity.IsAdmin
}

// CanSubmit reports whether identity may submit a post. Any authenticated
// identity may.
func CanSubmit(identity *models.Profile) bool {
	return identity != nil
}

// CanVote reports whether identity may vote on post. Voting requires an
// authenticated identity and an approved post.
func CanVote(identity *models.Profile, post *models.Post) bool {
	return identity != nil && post != nil && post.Status == models.StatusApproved
}

// CanViewPost reports whether identity may read post. Approved posts are
// public; pending and rejected posts are visible only to their author and to
// moderators.
func CanViewPost(identity *models.Profile, post *models.Post) bool {
	if post == nil {
		return false
	}
	if post.Status == models.StatusApproved {
		return true
	}
	return identity != nil && (identity.ID == post.AuthorID || identity.IsAdmin)
}
