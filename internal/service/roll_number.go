package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

const defaultRollAttempts = 20

type rollNumberChecker interface {
	ExistsByRollNumber(ctx context.Context, roll string) (bool, error)
}

// RollNumberAllocator produces unused roll numbers of the form PREFIX-YYYY-NNNN.
// After the four digit space has produced only collisions it widens to six
// digits before giving up with a conflict.
type RollNumberAllocator struct {
	checker     rollNumberChecker
	prefix      string
	maxAttempts int
	now         func() time.Time
	intn        func(n int) int
}

// RollOption customises a RollNumberAllocator.
type RollOption func(*RollNumberAllocator)

// WithRollClock sets the clock used for the year segment.
func WithRollClock(now func() time.Time) RollOption {
	return func(a *RollNumberAllocator) { a.now = now }
}

// WithRollRandom sets the random source; intn must return a value in [0, n).
func WithRollRandom(intn func(n int) int) RollOption {
	return func(a *RollNumberAllocator) { a.intn = intn }
}

// NewRollNumberAllocator constructs an allocator.
func NewRollNumberAllocator(checker rollNumberChecker, prefix string, maxAttempts int, opts ...RollOption) *RollNumberAllocator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "KPCI"
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultRollAttempts
	}
	a := &RollNumberAllocator{
		checker:     checker,
		prefix:      prefix,
		maxAttempts: maxAttempts,
		now:         time.Now,
		intn:        rand.Intn,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate returns a roll number not yet present in the store. It does not
// reserve it; the unique index on insert is the final guard.
func (a *RollNumberAllocator) Allocate(ctx context.Context) (string, error) {
	year := a.now().Year()
	widths := []struct{ min, span int }{
		{1000, 9000},
		{100000, 900000},
	}
	for _, w := range widths {
		for i := 0; i < a.maxAttempts; i++ {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			candidate := fmt.Sprintf("%s-%d-%d", a.prefix, year, w.min+a.intn(w.span))
			taken, err := a.checker.ExistsByRollNumber(ctx, candidate)
			if err != nil {
				return "", appErrors.Internal(err, "failed to check roll number")
			}
			if !taken {
				return candidate, nil
			}
		}
	}
	return "", appErrors.Clone(appErrors.ErrConflict, "unable to allocate roll number")
}
