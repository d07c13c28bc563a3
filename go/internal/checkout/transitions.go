package checkout

import "github.com/mcdev12/grouporder/go/internal/models"

// allowedTransitions lists the outgoing edges of each lifecycle status.
// Submitted is terminal.
var allowedTransitions = map[models.GroupStatus][]models.GroupStatus{
	models.GroupStatusOpen:      {models.GroupStatusLocked, models.GroupStatusSubmitted},
	models.GroupStatusLocked:    {models.GroupStatusOpen, models.GroupStatusSubmitted},
	models.GroupStatusSubmitted: {},
}

// IsAllowedGroupStatusTransition reports whether a group may move from one status to another.
// Self-transitions of known statuses are always allowed so retries are no-ops.
func IsAllowedGroupStatusTransition(from, to models.GroupStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
