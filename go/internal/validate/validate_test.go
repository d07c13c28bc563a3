package validate_test

import (
	"math"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/validate"
)

func TestID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "canonical uuid: ok", value: gofakeit.UUID()},
		{name: "surrounding whitespace is trimmed: ok", value: "  " + gofakeit.UUID() + "\n"},
		{name: "uppercase hex: ok", value: strings.ToUpper(gofakeit.UUID())},
		{name: "empty: error", value: "", wantErr: true},
		{name: "braced uuid: error", value: "{" + gofakeit.UUID() + "}", wantErr: true},
		{name: "urn form: error", value: "urn:uuid:" + gofakeit.UUID(), wantErr: true},
		{name: "no hyphens: error", value: strings.ReplaceAll(gofakeit.UUID(), "-", ""), wantErr: true},
		{name: "not hex: error", value: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := validate.ID("group_id", "group id", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
				assert.Equal(t, "group_id", apperrors.GetMetadata(err)["field"])
				assert.EqualError(t, err, "A valid group id is required.")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.value)), id.String())
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "trimmed and lowercased: ok", value: "  Host@Example.COM ", want: "host@example.com"},
		{name: "plus addressing: ok", value: "guest+1@example.com", want: "guest+1@example.com"},
		{name: "missing at: error", value: "host.example.com", wantErr: true},
		{name: "missing domain dot: error", value: "host@example", wantErr: true},
		{name: "inner whitespace: error", value: "ho st@example.com", wantErr: true},
		{name: "empty: error", value: "   ", wantErr: true},
		{name: "too long: error", value: strings.Repeat("a", 250) + "@x.io", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.Email("email", "email", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
				assert.Equal(t, "email", apperrors.GetMetadata(err)["field"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmailLengthBoundary(t *testing.T) {
	local := strings.Repeat("a", validate.MaxEmailLength-len("@x.io"))
	email := local + "@x.io"
	require.Len(t, email, validate.MaxEmailLength)

	_, err := validate.Email("email", "email", email)
	assert.NoError(t, err)

	_, err = validate.Email("email", "email", "a"+email)
	assert.Error(t, err)
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		want    int
		wantErr bool
	}{
		{name: "in range: ok", value: 3, want: 3},
		{name: "rounds half away from zero", value: 2.5, want: 3},
		{name: "rounds down", value: 7.4, want: 7},
		{name: "above max clamps to 99", value: 150, want: 99},
		{name: "negative clamps to 1", value: -5, want: 1},
		{name: "zero clamps to 1", value: 0, want: 1},
		{name: "safe range edge: ok", value: 1_000_000, want: 99},
		{name: "beyond safe range: error", value: 1_000_001, wantErr: true},
		{name: "NaN: error", value: math.NaN(), wantErr: true},
		{name: "infinity: error", value: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validate.Quantity("quantity", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
				assert.Equal(t, "quantity", apperrors.GetMetadata(err)["field"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundQuantityDoesNotClamp(t *testing.T) {
	got, err := validate.RoundQuantity("quantity", 0.4)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = validate.RoundQuantity("quantity", -3)
	require.NoError(t, err)
	assert.Equal(t, -3, got)
}
