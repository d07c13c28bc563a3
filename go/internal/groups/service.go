package groups

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/rpc"
)

const (
	// ServiceName is the fully-qualified name of the GroupService.
	ServiceName = "grouporder.v1.GroupService"

	CreateGroupWithHostProcedure   = "/" + ServiceName + "/CreateGroupWithHost"
	GetGroupProcedure              = "/" + ServiceName + "/GetGroup"
	GetParticipantContextProcedure = "/" + ServiceName + "/GetParticipantContext"
)

// GroupsApp defines what the service layer needs from the groups application
type GroupsApp interface {
	CreateGroupWithHost(ctx context.Context, req CreateGroupWithHostRequest) (*CreateGroupWithHostResponse, error)
	GetGroup(ctx context.Context, req GetGroupRequest) (*GetGroupResponse, error)
	GetGroupParticipantContext(ctx context.Context, req GetParticipantContextRequest) (*ParticipantContext, error)
}

// Service implements the GroupService Connect interface
type Service struct {
	app GroupsApp
}

// NewService creates a new groups Connect service
func NewService(app GroupsApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts every GroupService procedure on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(rpc.HandlerOptions(), opts...)
	mux.Handle(CreateGroupWithHostProcedure, connect.NewUnaryHandler(CreateGroupWithHostProcedure, s.CreateGroupWithHost, opts...))
	mux.Handle(GetGroupProcedure, connect.NewUnaryHandler(GetGroupProcedure, s.GetGroup, opts...))
	mux.Handle(GetParticipantContextProcedure, connect.NewUnaryHandler(GetParticipantContextProcedure, s.GetParticipantContext, opts...))
}

// CreateGroupWithHost creates a group and its host participant
func (s *Service) CreateGroupWithHost(ctx context.Context, req *connect.Request[CreateGroupWithHostRequest]) (*connect.Response[CreateGroupWithHostResponse], error) {
	res, err := s.app.CreateGroupWithHost(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// GetGroup retrieves a group by ID
func (s *Service) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	res, err := s.app.GetGroup(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// GetParticipantContext resolves a participant within its group
func (s *Service) GetParticipantContext(ctx context.Context, req *connect.Request[GetParticipantContextRequest]) (*connect.Response[ParticipantContext], error) {
	res, err := s.app.GetGroupParticipantContext(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}
