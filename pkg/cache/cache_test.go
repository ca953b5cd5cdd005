package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestService_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	c := NewService(nil)

	assert.False(t, c.IsAvailable())
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)

	// 쓰기/삭제는 조용히 무시
	assert.NoError(t, c.Set(ctx, PrefixProduct+"1", map[string]string{"id": "1"}, TTLProduct))
	assert.NoError(t, c.Delete(ctx, PrefixProduct+"1"))
	assert.NoError(t, c.DeletePattern(ctx, PrefixProducts+"*"))

	var dest map[string]string
	assert.ErrorIs(t, c.Get(ctx, PrefixProduct+"1", &dest), ErrUnavailable)

	// 영속 문자열 저장은 실패를 알린다
	assert.ErrorIs(t, c.SetString(ctx, PrefixPrefs+"k", "v", 0), ErrUnavailable)
	_, err := c.GetString(ctx, PrefixPrefs+"k")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewService(client)
	assert.True(t, c.IsAvailable())
	assert.Error(t, c.Ping(context.Background()))

	_, err := c.GetString(context.Background(), "missing")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
