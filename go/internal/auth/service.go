package auth

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/rpc"
)

const (
	// ServiceName is the fully-qualified name of the AuthService.
	ServiceName = "grouporder.v1.AuthService"

	IssueRealtimeTokenProcedure = "/" + ServiceName + "/IssueRealtimeToken"
)

// AuthApp defines what the service layer needs from the auth application
type AuthApp interface {
	IssueRealtimeToken(ctx context.Context, req IssueRealtimeTokenRequest) (*IssueRealtimeTokenResponse, error)
}

// Service implements the AuthService Connect interface
type Service struct {
	app AuthApp
}

// NewService creates a new auth Connect service
func NewService(app AuthApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts every AuthService procedure on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(rpc.HandlerOptions(), opts...)
	mux.Handle(IssueRealtimeTokenProcedure, connect.NewUnaryHandler(IssueRealtimeTokenProcedure, s.IssueRealtimeToken, opts...))
}

// IssueRealtimeToken signs a realtime subscription token
func (s *Service) IssueRealtimeToken(ctx context.Context, req *connect.Request[IssueRealtimeTokenRequest]) (*connect.Response[IssueRealtimeTokenResponse], error) {
	res, err := s.app.IssueRealtimeToken(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}
