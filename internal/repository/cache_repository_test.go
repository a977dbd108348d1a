package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/mi-attendance-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "records")
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "student:all", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "student:all", []string{"a"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "student:*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}

func TestCacheRepositoryKeyNamespace(t *testing.T) {
	assert.Equal(t, "records:student:all", NewCacheRepository(nil, "records").key("student:all"))
	assert.Equal(t, "student:all", NewCacheRepository(nil, "").key("student:all"))
}
