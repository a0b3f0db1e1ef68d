/*
 * @module service/cleanup/session_cleanup_service
 * @description 会话清理服务，负责定期清理过期的分析会话及其文件
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/session_req.md
 * @stateFlow 定时触发 -> 读取保留期配置 -> 清理过期会话 -> 记录结果
 * @rules 清理失败不中断调度，下一周期重试
 * @dependencies aigov-service/service/session, github.com/robfig/cron/v3
 * @refs service/session
 */

package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aigov-service/service/session"

	"github.com/robfig/cron/v3"
)

// DefaultSessionTTLHours 会话默认保留小时数
const DefaultSessionTTLHours = 24

// SessionCleanupService 会话清理服务
type SessionCleanupService struct {
	sessionService *session.SessionService
	ttl            time.Duration
	cron           *cron.Cron
	ctx            context.Context
	cancel         context.CancelFunc
	started        bool
}

// NewSessionCleanupService 创建会话清理服务实例
func NewSessionCleanupService(sessionService *session.SessionService, ttl time.Duration) *SessionCleanupService {
	if ttl <= 0 {
		ttl = DefaultSessionTTLHours * time.Hour
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &SessionCleanupService{
		sessionService: sessionService,
		ttl:            ttl,
		cron:           cron.New(cron.WithSeconds()),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// CleanupExpiredSessions 清理超过保留期的会话
func (s *SessionCleanupService) CleanupExpiredSessions(ctx context.Context) error {
	slog.Info("开始清理过期会话", "ttl_hours", s.ttl.Hours())
	startTime := time.Now()

	cleaned, err := s.sessionService.CleanupExpired(s.ttl)
	if err != nil {
		slog.Error("清理过期会话失败", "error", err, "cleaned_count", cleaned)
		return err
	}

	slog.Info("过期会话清理完成",
		"cleaned_count", cleaned,
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

// StartScheduledCleanup 启动定时清理任务，每小时整点执行
func (s *SessionCleanupService) StartScheduledCleanup() error {
	if s.started {
		return fmt.Errorf("会话清理调度器已经启动")
	}

	slog.Info("启动会话清理调度器")

	// Cron表达式：秒 分 时 日 月 周
	_, err := s.cron.AddFunc("0 0 * * * *", func() {
		if err := s.CleanupExpiredSessions(s.ctx); err != nil {
			slog.Error("定时会话清理任务失败", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("添加定时任务失败: %w", err)
	}

	s.cron.Start()
	s.started = true

	slog.Info("会话清理调度器启动成功，将每小时执行一次清理")
	return nil
}

// StopScheduledCleanup 停止定时清理任务
func (s *SessionCleanupService) StopScheduledCleanup() {
	if !s.started {
		return
	}

	slog.Info("停止会话清理调度器")
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	s.started = false
}
