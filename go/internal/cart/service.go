package cart

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/rpc"
)

const (
	// ServiceName is the fully-qualified name of the CartService.
	ServiceName = "grouporder.v1.CartService"

	GetCartSnapshotProcedure     = "/" + ServiceName + "/GetCartSnapshot"
	UpsertCartItemProcedure      = "/" + ServiceName + "/UpsertCartItem"
	RemoveCartItemProcedure      = "/" + ServiceName + "/RemoveCartItem"
	SetCartItemQuantityProcedure = "/" + ServiceName + "/SetCartItemQuantity"
)

// CartApp defines what the service layer needs from the cart application
type CartApp interface {
	GetCartSnapshot(ctx context.Context, req GetCartSnapshotRequest) (*GetCartSnapshotResponse, error)
	UpsertCartItem(ctx context.Context, req UpsertCartItemRequest) (*UpsertCartItemResponse, error)
	RemoveCartItem(ctx context.Context, req RemoveCartItemRequest) (*RemoveCartItemResponse, error)
	SetCartItemQuantity(ctx context.Context, req SetCartItemQuantityRequest) (*SetCartItemQuantityResponse, error)
}

// Service implements the CartService Connect interface
type Service struct {
	app CartApp
}

// NewService creates a new cart Connect service
func NewService(app CartApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts every CartService procedure on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(rpc.HandlerOptions(), opts...)
	mux.Handle(GetCartSnapshotProcedure, connect.NewUnaryHandler(GetCartSnapshotProcedure, s.GetCartSnapshot, opts...))
	mux.Handle(UpsertCartItemProcedure, connect.NewUnaryHandler(UpsertCartItemProcedure, s.UpsertCartItem, opts...))
	mux.Handle(RemoveCartItemProcedure, connect.NewUnaryHandler(RemoveCartItemProcedure, s.RemoveCartItem, opts...))
	mux.Handle(SetCartItemQuantityProcedure, connect.NewUnaryHandler(SetCartItemQuantityProcedure, s.SetCartItemQuantity, opts...))
}

// GetCartSnapshot returns the requester's cart view
func (s *Service) GetCartSnapshot(ctx context.Context, req *connect.Request[GetCartSnapshotRequest]) (*connect.Response[GetCartSnapshotResponse], error) {
	res, err := s.app.GetCartSnapshot(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// UpsertCartItem sets a cart line's quantity
func (s *Service) UpsertCartItem(ctx context.Context, req *connect.Request[UpsertCartItemRequest]) (*connect.Response[UpsertCartItemResponse], error) {
	res, err := s.app.UpsertCartItem(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// RemoveCartItem deletes a cart line
func (s *Service) RemoveCartItem(ctx context.Context, req *connect.Request[RemoveCartItemRequest]) (*connect.Response[RemoveCartItemResponse], error) {
	res, err := s.app.RemoveCartItem(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}

// SetCartItemQuantity changes or removes an existing cart line
func (s *Service) SetCartItemQuantity(ctx context.Context, req *connect.Request[SetCartItemQuantityRequest]) (*connect.Response[SetCartItemQuantityResponse], error) {
	res, err := s.app.SetCartItemQuantity(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}
