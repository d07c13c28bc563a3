package checkout

import (
	"time"

	"github.com/mcdev12/grouporder/go/internal/models"
	"github.com/mcdev12/grouporder/go/internal/tracker"
)

// TransitionRequest names the group and the host asking for a lifecycle move.
type TransitionRequest struct {
	GroupID           string `json:"group_id"`
	HostParticipantID string `json:"host_participant_id"`
}

// GroupTransition is the result of a successful lifecycle move.
type GroupTransition struct {
	Group          *models.Group      `json:"group"`
	PreviousStatus models.GroupStatus `json:"previous_status"`
	NextStatus     models.GroupStatus `json:"next_status"`
}

// GetOrderTrackerRequest identifies a participant of a submitted group.
type GetOrderTrackerRequest struct {
	GroupID       string `json:"group_id"`
	ParticipantID string `json:"participant_id"`
}

// GetOrderTrackerResponse is the delivery stage as of ServerNow.
type GetOrderTrackerResponse struct {
	Stage          tracker.Stage `json:"stage"`
	ElapsedSeconds int64         `json:"elapsed_seconds"`
	SubmittedAt    *time.Time    `json:"submitted_at"`
	ServerNow      time.Time     `json:"server_now"`
}

// GetServerNowRequest takes no parameters.
type GetServerNowRequest struct{}

// GetServerNowResponse lets clients compute their clock offset.
type GetServerNowResponse struct {
	ServerNow time.Time `json:"server_now"`
}
