package groups

import "github.com/mcdev12/grouporder/go/internal/models"

// CreateGroupWithHostRequest starts a new group session for a host.
type CreateGroupWithHostRequest struct {
	HostEmail string `json:"host_email"`
}

// CreateGroupWithHostResponse is the new group and its host participant.
type CreateGroupWithHostResponse struct {
	Group       *models.Group       `json:"group"`
	Participant *models.Participant `json:"participant"`
}

// GetGroupRequest identifies a group.
type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

// GetGroupResponse wraps a single group.
type GetGroupResponse struct {
	Group *models.Group `json:"group"`
}

// GetParticipantContextRequest identifies a participant within a group.
type GetParticipantContextRequest struct {
	GroupID       string `json:"group_id"`
	ParticipantID string `json:"participant_id"`
}

// ParticipantContext is a participant resolved together with its group.
type ParticipantContext struct {
	Group       *models.Group       `json:"group"`
	Participant *models.Participant `json:"participant"`
}
