package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/grouporder/go/internal/models"
)

var (
	hostID     = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	guestID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	pizzaID    = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	friesID    = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	goneID     = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
	strangerID = uuid.MustParse("99999999-9999-9999-9999-999999999999")
)

func snapshotFixture() ([]models.Participant, []models.CartItem, []models.MenuItem) {
	participants := []models.Participant{
		{ID: hostID, Email: "host@example.com", IsHost: true},
		{ID: guestID, Email: "guest@example.com"},
	}
	items := []models.CartItem{
		{ID: uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc"), ParticipantID: hostID, MenuItemID: pizzaID, Quantity: 2},
		{ID: uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd"), ParticipantID: guestID, MenuItemID: friesID, Quantity: 3},
		{ID: uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"), ParticipantID: guestID, MenuItemID: goneID, Quantity: 1},
		{ID: uuid.MustParse("12121212-1212-1212-1212-121212121212"), ParticipantID: strangerID, MenuItemID: pizzaID, Quantity: 4},
	}
	menu := []models.MenuItem{
		{ID: pizzaID, Name: "Margherita Pizza", Price: decimal.RequireFromString("14.50")},
		{ID: friesID, Name: "Truffle Fries", Price: decimal.RequireFromString("6.25")},
	}
	return participants, items, menu
}

func TestBuildSnapshotHost(t *testing.T) {
	participants, items, menu := snapshotFixture()

	snap := BuildSnapshot(&participants[0], participants, items, menu, "USD")
	host, ok := snap.(*models.HostCartSnapshot)
	require.True(t, ok)
	require.Len(t, host.Sections, 2)
	assert.Equal(t, hostID, host.Sections[0].ParticipantID)
	assert.Equal(t, guestID, host.Sections[1].ParticipantID)

	sum := decimal.Zero
	for _, section := range host.Sections {
		sum = sum.Add(section.Subtotal)
	}
	assert.True(t, sum.Equal(host.GroupTotal))
	assert.True(t, decimal.RequireFromString("47.75").Equal(host.GroupTotal))

	data, err := json.MarshalIndent(snap, "", "  ")
	require.NoError(t, err)
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "host_snapshot", data)
}

func TestBuildSnapshotGuest(t *testing.T) {
	participants, items, menu := snapshotFixture()

	snap := BuildSnapshot(&participants[1], participants, items, menu, "USD")
	guest, ok := snap.(*models.GuestCartSnapshot)
	require.True(t, ok)
	require.Len(t, guest.Items, 1, "dangling menu item is excluded")
	assert.Equal(t, friesID, guest.Items[0].MenuItemID)

	data, err := json.MarshalIndent(snap, "", "  ")
	require.NoError(t, err)
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "guest_snapshot", data)
}

func TestBuildSnapshotEmptyCart(t *testing.T) {
	participants, _, menu := snapshotFixture()

	guest := BuildSnapshot(&participants[1], participants, nil, menu, "USD").(*models.GuestCartSnapshot)
	assert.NotNil(t, guest.Items)
	assert.Empty(t, guest.Items)
	assert.True(t, guest.Subtotal.IsZero())

	host := BuildSnapshot(&participants[0], participants, nil, menu, "USD").(*models.HostCartSnapshot)
	require.Len(t, host.Sections, 2)
	assert.True(t, host.GroupTotal.IsZero())
}

func TestCanMutate(t *testing.T) {
	host := &models.Participant{ID: hostID, IsHost: true}
	guest := &models.Participant{ID: guestID}

	assert.True(t, CanMutate(host, hostID))
	assert.True(t, CanMutate(host, guestID))
	assert.True(t, CanMutate(guest, guestID))
	assert.False(t, CanMutate(guest, hostID))
	assert.False(t, CanMutate(guest, strangerID))
}
