package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/grouporder/go/internal/tracker"
)

func TestComputeAt(t *testing.T) {
	submitted := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    tracker.Result
	}{
		{name: "just submitted", elapsed: 0, want: tracker.Result{Stage: tracker.StageOrdered}},
		{name: "before in progress", elapsed: 14999 * time.Millisecond, want: tracker.Result{Stage: tracker.StageOrdered, ElapsedSeconds: 14}},
		{name: "in progress boundary", elapsed: 15 * time.Second, want: tracker.Result{Stage: tracker.StageInProgress, ElapsedSeconds: 15}},
		{name: "before delivered", elapsed: 44 * time.Second, want: tracker.Result{Stage: tracker.StageInProgress, ElapsedSeconds: 44}},
		{name: "delivered boundary", elapsed: 45 * time.Second, want: tracker.Result{Stage: tracker.StageDelivered, ElapsedSeconds: 45}},
		{name: "long after", elapsed: time.Hour, want: tracker.Result{Stage: tracker.StageDelivered, ElapsedSeconds: 3600}},
		{name: "clock skew is clamped", elapsed: -10 * time.Second, want: tracker.Result{Stage: tracker.StageOrdered}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracker.ComputeAt(&submitted, submitted.Add(tt.elapsed)))
		})
	}
}

func TestComputeAtWithoutSubmission(t *testing.T) {
	assert.Equal(t, tracker.Result{Stage: tracker.StageOrdered}, tracker.ComputeAt(nil, time.Now()))
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		submittedAt string
		now         string
		want        tracker.Result
	}{
		{name: "missing submission", submittedAt: "", now: "2026-03-01T12:00:30Z", want: tracker.Result{Stage: tracker.StageOrdered}},
		{name: "unparsable submission", submittedAt: "yesterday", now: "2026-03-01T12:00:30Z", want: tracker.Result{Stage: tracker.StageOrdered}},
		{name: "unparsable now", submittedAt: "2026-03-01T12:00:00Z", now: "later", want: tracker.Result{Stage: tracker.StageOrdered}},
		{name: "offsets are honored", submittedAt: "2026-03-01T13:00:00+01:00", now: "2026-03-01T12:00:20Z", want: tracker.Result{Stage: tracker.StageInProgress, ElapsedSeconds: 20}},
		{name: "fractional seconds floor", submittedAt: "2026-03-01T12:00:00.900Z", now: "2026-03-01T12:00:45.100Z", want: tracker.Result{Stage: tracker.StageInProgress, ElapsedSeconds: 44}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracker.Compute(tt.submittedAt, tt.now))
		})
	}
}
