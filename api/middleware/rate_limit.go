/*
 * @module api/middleware/rate_limit
 * @description 限流中间件，基于Redis对分析接口进行全局与客户端两层限流
 * @architecture 分层架构 - 中间件层
 * @documentReference ai_docs/rate_limit_design.md
 * @stateFlow 提取客户端标识 -> 限流检查 -> 放行或返回429
 * @rules 限流器不可用时放行请求，不因限流组件故障阻断业务
 * @dependencies aigov-service/service/rate_limiter, github.com/go-chi/render
 * @refs service/rate_limiter
 */

package middleware

import (
	"net"
	"net/http"
	"strconv"

	"aigov-service/service/rate_limiter"

	"github.com/go-chi/render"
)

// 默认限流参数
const (
	globalWindowSeconds = 60
	globalMaxRequests   = 600
	clientWindowSeconds = 60
	clientMaxRequests   = 60
)

// RateLimit 创建限流中间件
// limiter为nil时中间件直接放行
func RateLimit(limiter *rate_limiter.RedisRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			rules := []rate_limiter.RateLimitRule{
				{
					Type:        rate_limiter.LimitTypeGlobal,
					TimeWindow:  globalWindowSeconds,
					MaxRequests: globalMaxRequests,
				},
				{
					Type:        rate_limiter.LimitTypeClient,
					TargetID:    clientIP(r),
					TimeWindow:  clientWindowSeconds,
					MaxRequests: clientMaxRequests,
				},
			}

			result, err := limiter.CheckRateLimit(r.Context(), rules)
			if err != nil {
				// 限流检查失败时放行
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

			if !result.Allowed {
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, map[string]interface{}{
					"status": http.StatusTooManyRequests,
					"msg":    result.Message,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP 提取客户端IP，优先使用反向代理头
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
