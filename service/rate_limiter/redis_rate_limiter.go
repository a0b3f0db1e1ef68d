/*
 * @module service/rate_limiter/redis_rate_limiter
 * @description 基于Redis的分布式限流服务，支持全局与客户端两层限流
 * @architecture 工具层 - 提供分布式限流能力
 * @documentReference ai_docs/rate_limit_design.md
 * @stateFlow 检查限流规则 -> Redis计数 -> 判断是否超限
 * @rules 使用Redis INCR和EXPIRE实现固定窗口限流，Lua脚本保证原子性
 * @dependencies github.com/go-redis/redis/v8
 * @refs api/middleware.go
 */

package rate_limiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// 限流层级
const (
	LimitTypeGlobal = "global"
	LimitTypeClient = "client"
)

// RateLimitResult 限流检查结果
type RateLimitResult struct {
	Allowed       bool   `json:"allowed"`    // 是否允许请求
	Limit         int    `json:"limit"`      // 限制数量
	Remaining     int    `json:"remaining"`  // 剩余数量
	ResetAt       int64  `json:"reset_at"`   // 重置时间（Unix时间戳）
	RateLimitType string `json:"limit_type"` // 限流层级：global/client
	Message       string `json:"message"`    // 提示信息
}

// RateLimitRule 限流规则
type RateLimitRule struct {
	Type        string // global/client
	TargetID    string // 客户端标识（全局规则为空）
	TimeWindow  int    // 时间窗口（秒）
	MaxRequests int    // 最大请求数
}

// RedisRateLimiter Redis限流器
type RedisRateLimiter struct {
	client *redis.Client
}

// NewRedisRateLimiter 按连接URL创建Redis限流器
func NewRedisRateLimiter(redisURL string) (*RedisRateLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis连接配置无效: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis连接失败: %w", err)
	}

	slog.Info("Redis限流器初始化成功", "redis_addr", opts.Addr)
	return &RedisRateLimiter{client: client}, nil
}

// rateLimitScript 固定窗口限流脚本
// 返回 {是否允许, 当前计数, 最大请求数, 剩余过期秒数}
const rateLimitScript = `
local key = KEYS[1]
local max_requests = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = redis.call('GET', key)
if current == false then
	current = 0
else
	current = tonumber(current)
end

if current >= max_requests then
	local ttl = redis.call('TTL', key)
	if ttl == -1 then
		ttl = window
	end
	return {0, current, max_requests, ttl}
end

local new_count = redis.call('INCR', key)
if new_count == 1 then
	redis.call('EXPIRE', key, window)
end

local ttl = redis.call('TTL', key)
if ttl == -1 then
	ttl = window
end
return {1, new_count, max_requests, ttl}
`

// CheckRateLimit 按层级优先检查限流（客户端 -> 全局），任一层超限即拒绝
func (r *RedisRateLimiter) CheckRateLimit(ctx context.Context, rules []RateLimitRule) (*RateLimitResult, error) {
	sortedRules := r.sortRulesByPriority(rules)

	for _, rule := range sortedRules {
		result, err := r.checkSingleRule(ctx, rule)
		if err != nil {
			return nil, err
		}
		if !result.Allowed {
			return result, nil
		}
	}

	if len(sortedRules) > 0 {
		last := sortedRules[len(sortedRules)-1]
		return r.buildResult(ctx, last)
	}

	return &RateLimitResult{
		Allowed:       true,
		Limit:         -1,
		Remaining:     -1,
		RateLimitType: "none",
		Message:       "无限流规则",
	}, nil
}

// checkSingleRule 检查单个限流规则
func (r *RedisRateLimiter) checkSingleRule(ctx context.Context, rule RateLimitRule) (*RateLimitResult, error) {
	key := r.buildRateLimitKey(rule.Type, rule.TargetID, rule.TimeWindow)

	result, err := r.client.Eval(ctx, rateLimitScript, []string{key}, rule.MaxRequests, rule.TimeWindow).Result()
	if err != nil {
		return nil, fmt.Errorf("限流检查失败: %w", err)
	}

	results := result.([]interface{})
	allowed := results[0].(int64) == 1
	currentCount := int(results[1].(int64))
	maxRequests := int(results[2].(int64))
	ttl := int(results[3].(int64))

	remaining := maxRequests - currentCount
	if remaining < 0 {
		remaining = 0
	}

	message := "允许请求"
	if !allowed {
		message = fmt.Sprintf("超过%s限流限制", r.getRateLimitTypeName(rule.Type))
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Limit:         maxRequests,
		Remaining:     remaining,
		ResetAt:       time.Now().Add(time.Duration(ttl) * time.Second).Unix(),
		RateLimitType: rule.Type,
		Message:       message,
	}, nil
}

// buildResult 读取当前窗口状态但不增加计数
func (r *RedisRateLimiter) buildResult(ctx context.Context, rule RateLimitRule) (*RateLimitResult, error) {
	key := r.buildRateLimitKey(rule.Type, rule.TargetID, rule.TimeWindow)
	current, err := r.client.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	remaining := rule.MaxRequests - current
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitResult{
		Allowed:       true,
		Limit:         rule.MaxRequests,
		Remaining:     remaining,
		ResetAt:       time.Now().Add(time.Duration(rule.TimeWindow) * time.Second).Unix(),
		RateLimitType: rule.Type,
		Message:       "允许请求",
	}, nil
}

// buildRateLimitKey 构造限流Key
func (r *RedisRateLimiter) buildRateLimitKey(limitType, targetID string, window int) string {
	baseKey := "rate_limit"
	currentWindow := time.Now().Unix() / int64(window)

	if limitType == LimitTypeGlobal {
		return fmt.Sprintf("%s:%s:%d", baseKey, limitType, currentWindow)
	}
	return fmt.Sprintf("%s:%s:%s:%d", baseKey, limitType, targetID, currentWindow)
}

// sortRulesByPriority 按优先级排序规则：client > global
func (r *RedisRateLimiter) sortRulesByPriority(rules []RateLimitRule) []RateLimitRule {
	priorityMap := map[string]int{
		LimitTypeClient: 2,
		LimitTypeGlobal: 1,
	}

	sorted := make([]RateLimitRule, len(rules))
	copy(sorted, rules)

	for i := 0; i < len(sorted)-1; i++ {
		for j := 0; j < len(sorted)-i-1; j++ {
			if priorityMap[sorted[j].Type] < priorityMap[sorted[j+1].Type] {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
			}
		}
	}
	return sorted
}

// getRateLimitTypeName 获取限流层级名称
func (r *RedisRateLimiter) getRateLimitTypeName(limitType string) string {
	switch limitType {
	case LimitTypeGlobal:
		return "全局"
	case LimitTypeClient:
		return "客户端"
	default:
		return "未知"
	}
}

// Close 关闭Redis客户端
func (r *RedisRateLimiter) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
