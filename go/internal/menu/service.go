package menu

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mcdev12/grouporder/go/internal/rpc"
)

const (
	// ServiceName is the fully-qualified name of the MenuService.
	ServiceName = "grouporder.v1.MenuService"

	ListMenuItemsProcedure = "/" + ServiceName + "/ListMenuItems"
)

// MenuApp defines what the service layer needs from the menu application
type MenuApp interface {
	ListMenuItems(ctx context.Context, req ListMenuItemsRequest) (*ListMenuItemsResponse, error)
}

// Service implements the MenuService Connect interface
type Service struct {
	app MenuApp
}

// NewService creates a new menu Connect service
func NewService(app MenuApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes mounts every MenuService procedure on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(rpc.HandlerOptions(), opts...)
	mux.Handle(ListMenuItemsProcedure, connect.NewUnaryHandler(ListMenuItemsProcedure, s.ListMenuItems, opts...))
}

// ListMenuItems returns the catalog
func (s *Service) ListMenuItems(ctx context.Context, req *connect.Request[ListMenuItemsRequest]) (*connect.Response[ListMenuItemsResponse], error) {
	res, err := s.app.ListMenuItems(ctx, *req.Msg)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(res), nil
}
