package menu

import "github.com/mcdev12/grouporder/go/internal/models"

// ListMenuItemsRequest takes no parameters.
type ListMenuItemsRequest struct{}

// ListMenuItemsResponse holds the catalog ordered by name.
type ListMenuItemsResponse struct {
	Items []models.MenuItem `json:"items"`
}
