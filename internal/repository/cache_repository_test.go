package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/institute-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	assert.False(t, repo.Available())
	var dest map[string]int
	assert.ErrorIs(t, repo.Get(ctx, "dash:admin", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "dash:admin", map[string]int{"a": 1}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "dash:*"))
	assert.NoError(t, repo.Close())
}
