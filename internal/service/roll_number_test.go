package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

type takenRolls struct {
	taken   map[string]bool
	all     bool
	err     error
	checked []string
}

func (f *takenRolls) ExistsByRollNumber(ctx context.Context, roll string) (bool, error) {
	f.checked = append(f.checked, roll)
	if f.err != nil {
		return false, f.err
	}
	return f.all || f.taken[roll], nil
}

func fixedYear() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }

func TestAllocateFormatsRoll(t *testing.T) {
	checker := &takenRolls{}
	alloc := NewRollNumberAllocator(checker, "kpci", 5, WithRollClock(fixedYear), WithRollRandom(func(int) int { return 234 }))

	roll, err := alloc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "KPCI-2024-1234", roll)
}

func TestAllocateSkipsTakenRolls(t *testing.T) {
	checker := &takenRolls{taken: map[string]bool{"KPCI-2024-1000": true}}
	next := 0
	alloc := NewRollNumberAllocator(checker, "KPCI", 5, WithRollClock(fixedYear), WithRollRandom(func(int) int {
		v := next
		next++
		return v
	}))

	roll, err := alloc.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "KPCI-2024-1001", roll)
	assert.Len(t, checker.checked, 2)
}

func TestAllocateWidensThenGivesUp(t *testing.T) {
	checker := &takenRolls{all: true}
	alloc := NewRollNumberAllocator(checker, "KPCI", 3, WithRollClock(fixedYear), WithRollRandom(func(int) int { return 0 }))

	_, err := alloc.Allocate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
	require.Len(t, checker.checked, 6)
	assert.Equal(t, "KPCI-2024-1000", checker.checked[0])
	assert.Equal(t, "KPCI-2024-100000", checker.checked[5])
}

func TestAllocateSurfacesStoreErrors(t *testing.T) {
	checker := &takenRolls{err: errors.New("connection reset")}
	alloc := NewRollNumberAllocator(checker, "KPCI", 3)

	_, err := alloc.Allocate(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
