package models

// VoteAction tells the store what to do with the vote row.
type VoteAction int

const (
	VoteInsert  VoteAction = iota // no prior vote: write the row
	VoteDelete                    // same value cast again: retract (toggle off)
	VoteReplace                   // opposite value: overwrite the row
)

// ResolveVote applies the one-vote-per-voter rule to the voter's existing
// vote (nil when there is none) and the requested value. It returns the
// action for the store, the delta to add to the post's aggregate count, and
// the voter's net value afterwards. Casting the same value twice retracts the
// vote; casting the opposite value swings the aggregate by 2*value.
func ResolveVote(existing *Vote, value int) (action VoteAction, delta int, net int) {
	switch {
	case existing == nil:
		return VoteInsert, value, value
	case existing.Value == value:
		return VoteDelete, -value, 0
	default:
		return VoteReplace, value - existing.Value, value
	}
}

// Validate checks if the vote meets all validation requirements
func (v *Vote) Validate() error {
	if err := validate.Struct(v); err != nil {
		return asValidationError(err)
	}
	return nil
}
