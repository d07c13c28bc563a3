package participants

import "github.com/mcdev12/grouporder/go/internal/models"

// JoinOrResumeParticipantRequest is the decoded invite pair.
type JoinOrResumeParticipantRequest struct {
	GroupID string `json:"group_id"`
	Email   string `json:"email"`
}

// JoinOrResumeParticipantResponse reports whether the participant was created.
type JoinOrResumeParticipantResponse struct {
	Participant *models.Participant `json:"participant"`
	IsNew       bool                `json:"is_new"`
}

// ListParticipantsRequest identifies a group.
type ListParticipantsRequest struct {
	GroupID string `json:"group_id"`
}

// ListParticipantsResponse holds participants host first, then in join order.
type ListParticipantsResponse struct {
	Participants []models.Participant `json:"participants"`
}
