package async

import (
	"context"
	"errors"
	"time"

	"ecoconnect-go/internal/metrics"
)

// Lifecycle describes the three observable transitions of an asynchronous
// action: pending, fulfilled, rejected. A slice supplies one hook per
// transition; OnStart and OnFailure may be nil when the slice has no state
// to change for them.
type Lifecycle[A, R any] struct {
	Slice string
	Name  string

	OnStart   func(args A)
	OnSuccess func(result R, args A)
	OnFailure func(message string, args A)
}

// Run drives one dispatch through the lifecycle: OnStart is applied
// synchronously, then the producer runs, then exactly one of
// OnSuccess/OnFailure. The producer's error is also returned so callers can
// await the outcome, but no slice state leaks on failure beyond the recorded
// message.
//
// Two concurrent runs of the same operation are not serialized: the last one
// to complete wins.
func Run[A, R any](ctx context.Context, l Lifecycle[A, R], args A, produce func(ctx context.Context, args A) (R, error)) error {
	start := time.Now()

	if l.OnStart != nil {
		l.OnStart(args)
	}

	result, err := produce(ctx, args)
	if err != nil {
		if l.OnFailure != nil {
			l.OnFailure(Message(err), args)
		}
		metrics.ObserveAction(l.Slice, l.Name, "rejected", start)
		return err
	}

	if l.OnSuccess != nil {
		l.OnSuccess(result, args)
	}
	metrics.ObserveAction(l.Slice, l.Name, "fulfilled", start)
	return nil
}

// Message reduces an error to the human-readable form stored on a slice.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	return err.Error()
}

// Delay blocks for d or until ctx is done, whichever comes first. Services
// use it to simulate network latency; a non-positive d returns immediately.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
