/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、迁移、全局服务装配与定时任务启动
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/backend_requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs ai_docs/model.md
 */

package service

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"aigov-service/service/badge"
	"aigov-service/service/cleanup"
	"aigov-service/service/fingerprint"
	"aigov-service/service/models"
	"aigov-service/service/rate_limiter"
	"aigov-service/service/report"
	"aigov-service/service/session"
	"aigov-service/service/verification"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                        *gorm.DB
	GlobalSessionService      *session.SessionService
	GlobalFingerprintService  *fingerprint.Service
	GlobalBadgeService        *badge.Service
	GlobalReportService       *report.ReportService
	GlobalVerificationService *verification.VerificationService
	GlobalCleanupService      *cleanup.SessionCleanupService
	GlobalRateLimiter         *rate_limiter.RedisRateLimiter
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=Asia/Shanghai",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	if err := DB.AutoMigrate(
		&models.AnalysisSession{},
		&models.AnalysisRecord{},
		&models.APIKey{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("数据库表结构迁移完成")
}

// initServices 初始化服务
func initServices() {
	uploadDir := getEnvWithDefault("UPLOAD_DIR", "uploads")
	resultsDir := getEnvWithDefault("RESULTS_DIR", "results")

	GlobalSessionService = session.NewSessionService(DB, uploadDir, resultsDir)
	GlobalFingerprintService = fingerprint.NewService()
	GlobalBadgeService = badge.NewService()
	GlobalReportService = report.NewReportService(GlobalSessionService)
	GlobalVerificationService = verification.NewVerificationService(DB)

	// 会话定时清理
	ttlHours := cleanup.DefaultSessionTTLHours
	if val := os.Getenv("SESSION_TTL_HOURS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			ttlHours = parsed
		}
	}
	GlobalCleanupService = cleanup.NewSessionCleanupService(GlobalSessionService, time.Duration(ttlHours)*time.Hour)
	if err := GlobalCleanupService.StartScheduledCleanup(); err != nil {
		log.Printf("启动会话清理调度器失败: %v", err)
	}

	// Redis限流器为可选组件，未配置REDIS_URL时不启用限流
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		limiter, err := rate_limiter.NewRedisRateLimiter(redisURL)
		if err != nil {
			log.Printf("Redis限流器初始化失败，限流功能不可用: %v", err)
		} else {
			GlobalRateLimiter = limiter
		}
	}

	log.Println("服务初始化完成")
}
