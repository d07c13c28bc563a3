// Package tracker maps time since submission to a cosmetic delivery stage.
package tracker

import (
	"math"
	"time"
)

// Stage is a delivery progress stage.
type Stage string

const (
	StageOrdered    Stage = "ordered"
	StageInProgress Stage = "in_progress"
	StageDelivered  Stage = "delivered"
)

const (
	// InProgressAfter is the elapsed time at which an order starts being prepared.
	InProgressAfter = 15 * time.Second
	// DeliveredAfter is the elapsed time at which an order counts as delivered.
	DeliveredAfter = 45 * time.Second
)

// Result is a tracker computation.
type Result struct {
	Stage          Stage `json:"stage"`
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

// StageFor maps whole elapsed seconds to a stage.
func StageFor(elapsedSeconds int64) Stage {
	switch {
	case elapsedSeconds >= int64(DeliveredAfter/time.Second):
		return StageDelivered
	case elapsedSeconds >= int64(InProgressAfter/time.Second):
		return StageInProgress
	default:
		return StageOrdered
	}
}

// ComputeAt computes the stage at now for an order submitted at submittedAt.
// A nil submittedAt yields ordered with zero elapsed seconds. Elapsed time is
// floored to whole seconds and never negative.
func ComputeAt(submittedAt *time.Time, now time.Time) Result {
	if submittedAt == nil || submittedAt.IsZero() {
		return Result{Stage: StageOrdered}
	}
	elapsed := int64(math.Floor(now.Sub(*submittedAt).Seconds()))
	elapsed = max(elapsed, 0)
	return Result{Stage: StageFor(elapsed), ElapsedSeconds: elapsed}
}

// Compute is ComputeAt over RFC 3339 timestamps as clients send them.
// Missing or unparsable timestamps fall back to ordered with zero elapsed seconds.
func Compute(submittedAt, now string) Result {
	if submittedAt == "" {
		return Result{Stage: StageOrdered}
	}
	start, err := time.Parse(time.RFC3339Nano, submittedAt)
	if err != nil {
		return Result{Stage: StageOrdered}
	}
	end, err := time.Parse(time.RFC3339Nano, now)
	if err != nil {
		return Result{Stage: StageOrdered}
	}
	return ComputeAt(&start, end)
}
