/*
 * @module service/rate_limiter/redis_rate_limiter_test
 * @description Redis限流服务集成测试，依赖REDIS_URL指向的真实Redis实例
 * @architecture 测试层
 * @documentReference ai_docs/rate_limit_design.md
 */

package rate_limiter

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) *RedisRateLimiter {
	t.Helper()
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("未设置REDIS_URL，跳过Redis限流集成测试")
	}

	limiter, err := NewRedisRateLimiter(redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { limiter.Close() })
	return limiter
}

// uniqueClientID 为每次测试生成独立客户端标识，避免窗口内计数互相干扰
func uniqueClientID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestCheckRateLimit_AllowsWithinLimit(t *testing.T) {
	limiter := newTestLimiter(t)
	rules := []RateLimitRule{
		{Type: LimitTypeClient, TargetID: uniqueClientID("allow"), TimeWindow: 60, MaxRequests: 5},
	}

	for i := 0; i < 5; i++ {
		result, err := limiter.CheckRateLimit(context.Background(), rules)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d", i+1)
		assert.Equal(t, 5, result.Limit)
	}
}

func TestCheckRateLimit_BlocksOverLimit(t *testing.T) {
	limiter := newTestLimiter(t)
	rules := []RateLimitRule{
		{Type: LimitTypeClient, TargetID: uniqueClientID("block"), TimeWindow: 60, MaxRequests: 3},
	}

	for i := 0; i < 3; i++ {
		result, err := limiter.CheckRateLimit(context.Background(), rules)
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	result, err := limiter.CheckRateLimit(context.Background(), rules)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, LimitTypeClient, result.RateLimitType)
	assert.Contains(t, result.Message, "客户端")
}

func TestCheckRateLimit_ClientCheckedBeforeGlobal(t *testing.T) {
	limiter := newTestLimiter(t)
	clientID := uniqueClientID("priority")
	rules := []RateLimitRule{
		{Type: LimitTypeGlobal, TimeWindow: 60, MaxRequests: 1000},
		{Type: LimitTypeClient, TargetID: clientID, TimeWindow: 60, MaxRequests: 1},
	}

	first, err := limiter.CheckRateLimit(context.Background(), rules)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	// 客户端层先超限，全局额度充足也会被拒绝
	second, err := limiter.CheckRateLimit(context.Background(), rules)
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Equal(t, LimitTypeClient, second.RateLimitType)
}

func TestCheckRateLimit_RemainingDecreases(t *testing.T) {
	limiter := newTestLimiter(t)
	rules := []RateLimitRule{
		{Type: LimitTypeClient, TargetID: uniqueClientID("remaining"), TimeWindow: 60, MaxRequests: 10},
	}

	first, err := limiter.CheckRateLimit(context.Background(), rules)
	require.NoError(t, err)
	second, err := limiter.CheckRateLimit(context.Background(), rules)
	require.NoError(t, err)
	assert.Less(t, second.Remaining, first.Remaining)
}

func TestCheckRateLimit_NoRules(t *testing.T) {
	limiter := newTestLimiter(t)

	result, err := limiter.CheckRateLimit(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, "none", result.RateLimitType)
}

func TestSortRulesByPriority(t *testing.T) {
	limiter := &RedisRateLimiter{}
	rules := []RateLimitRule{
		{Type: LimitTypeGlobal, TimeWindow: 60, MaxRequests: 100},
		{Type: LimitTypeClient, TargetID: "c1", TimeWindow: 60, MaxRequests: 10},
	}

	sorted := limiter.sortRulesByPriority(rules)
	require.Len(t, sorted, 2)
	assert.Equal(t, LimitTypeClient, sorted[0].Type)
	assert.Equal(t, LimitTypeGlobal, sorted[1].Type)
	// 原始切片不被修改
	assert.Equal(t, LimitTypeGlobal, rules[0].Type)
}

func TestBuildRateLimitKey(t *testing.T) {
	limiter := &RedisRateLimiter{}

	globalKey := limiter.buildRateLimitKey(LimitTypeGlobal, "", 60)
	assert.Contains(t, globalKey, "rate_limit:global:")

	clientKey := limiter.buildRateLimitKey(LimitTypeClient, "10.0.0.1", 60)
	assert.Contains(t, clientKey, "rate_limit:client:10.0.0.1:")
}

func TestGetRateLimitTypeName(t *testing.T) {
	limiter := &RedisRateLimiter{}
	assert.Equal(t, "全局", limiter.getRateLimitTypeName(LimitTypeGlobal))
	assert.Equal(t, "客户端", limiter.getRateLimitTypeName(LimitTypeClient))
	assert.Equal(t, "未知", limiter.getRateLimitTypeName("other"))
}
