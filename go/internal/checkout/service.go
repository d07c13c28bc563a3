package checkout

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/rpc"
)

const (
	// ServiceName is the fully-qualified name of the CheckoutService.
	ServiceName = "grouporder.v1.CheckoutService"

	LockGroupProcedure       = "/" + ServiceName + "/LockGroup"
	UnlockGroupProcedure     = "/" + ServiceName + "/UnlockGroup"
	SubmitOrderProcedure     = "/" + ServiceName + "/SubmitOrder"
	GetOrderTrackerProcedure = "/" + ServiceName + "/GetOrderTracker"
	GetServerNowProcedure    = "/" + ServiceName + "/GetServerNow"
)

// CheckoutApp defines what the service layer needs from the checkout application
type CheckoutApp interface {
	LockGroup(ctx context.Context, req TransitionRequest) (*GroupTransition, error)
	UnlockGroup(ctx context.Context, req TransitionRequest) (*GroupTransition, error)
	SubmitOrder(ctx context.Context, req TransitionRequest) (*GroupTransition, error)
	GetOrderTracker(ctx context.Context, req GetOrderTrackerRequest) (*GetOrderTrackerResponse, error)
	GetServerNow(ctx context.Context, req GetServerNowRequest) (*GetServerNowResponse, error)
}

// Service implements the CheckoutService Connect interface
type Service struct {
	app CheckoutApp
}

// NewService creates a new checkout Connect service
func NewService(app CheckoutApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts every CheckoutService procedure on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(rpc.HandlerOptions(), opts...)
	mux.Handle(LockGroupProcedure, connect.NewUnaryHandler(LockGroupProcedure, s.LockGroup, opts...))
	mux.Handle(UnlockGroupProcedure, connect.NewUnaryHandler(UnlockGroupProcedure, s.UnlockGroup, opts...))
	mux.Handle(SubmitOrderProcedure, connect.NewUnaryHandler(SubmitOrderProcedure, s.SubmitOrder, opts...))
	mux.Handle(GetOrderTrackerProcedure, connect.NewUnaryHandler(GetOrderTrackerProcedure, s.GetOrderTracker, opts...))
	mux.Handle(GetServerNowProcedure, connect.NewUnaryHandler(GetServerNowProcedure, s.GetServerNow, opts...))
}

// LockGroup locks the cart for review
func (s *Service) LockGroup(ctx context.Context, req *connect.Request[TransitionRequest]) (*connect.Response[GroupTransition], error) {
	res, err := s.app.LockGroup(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// UnlockGroup reopens the cart
func (s *Service) UnlockGroup(ctx context.Context, req *connect.Request[TransitionRequest]) (*connect.Response[GroupTransition], error) {
	res, err := s.app.UnlockGroup(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// SubmitOrder submits the group order
func (s *Service) SubmitOrder(ctx context.Context, req *connect.Request[TransitionRequest]) (*connect.Response[GroupTransition], error) {
	res, err := s.app.SubmitOrder(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// GetOrderTracker reports delivery progress
func (s *Service) GetOrderTracker(ctx context.Context, req *connect.Request[GetOrderTrackerRequest]) (*connect.Response[GetOrderTrackerResponse], error) {
	res, err := s.app.GetOrderTracker(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// GetServerNow reports the server clock
func (s *Service) GetServerNow(ctx context.Context, req *connect.Request[GetServerNowRequest]) (*connect.Response[GetServerNowResponse], error) {
	res, err := s.app.GetServerNow(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}
