package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/grouporder/go/internal/models"
)

func TestIsAllowedGroupStatusTransition(t *testing.T) {
	open, locked, submitted := models.GroupStatusOpen, models.GroupStatusLocked, models.GroupStatusSubmitted

	tests := []struct {
		from, to models.GroupStatus
		want     bool
	}{
		{open, open, true},
		{open, locked, true},
		{open, submitted, true},
		{locked, open, true},
		{locked, locked, true},
		{locked, submitted, true},
		{submitted, submitted, true},
		{submitted, open, false},
		{submitted, locked, false},
		{"", open, false},
		{open, "cancelled", false},
		{"cancelled", "cancelled", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedGroupStatusTransition(tt.from, tt.to))
		})
	}
}
