package participants

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/rpc"
)

const (
	// ServiceName is the fully-qualified name of the ParticipantService.
	ServiceName = "grouporder.v1.ParticipantService"

	JoinOrResumeParticipantProcedure = "/" + ServiceName + "/JoinOrResumeParticipant"
	ListParticipantsProcedure        = "/" + ServiceName + "/ListParticipants"
)

// ParticipantsApp defines what the service layer needs from the participants application
type ParticipantsApp interface {
	JoinOrResumeParticipant(ctx context.Context, req JoinOrResumeParticipantRequest) (*JoinOrResumeParticipantResponse, error)
	ListParticipants(ctx context.Context, req ListParticipantsRequest) (*ListParticipantsResponse, error)
}

// Service implements the ParticipantService Connect interface
type Service struct {
	app ParticipantsApp
}

// NewService creates a new participants Connect service
func NewService(app ParticipantsApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts every ParticipantService procedure on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(rpc.HandlerOptions(), opts...)
	mux.Handle(JoinOrResumeParticipantProcedure, connect.NewUnaryHandler(JoinOrResumeParticipantProcedure, s.JoinOrResumeParticipant, opts...))
	mux.Handle(ListParticipantsProcedure, connect.NewUnaryHandler(ListParticipantsProcedure, s.ListParticipants, opts...))
}

// JoinOrResumeParticipant resolves an invite into a participant
func (s *Service) JoinOrResumeParticipant(ctx context.Context, req *connect.Request[JoinOrResumeParticipantRequest]) (*connect.Response[JoinOrResumeParticipantResponse], error) {
	res, err := s.app.JoinOrResumeParticipant(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// ListParticipants lists a group's participants
func (s *Service) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	res, err := s.app.ListParticipants(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}
