/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/backend_requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs ai_docs/model.md
 */

package api

import (
	"log"
	"os"

	"aigov-service/api/controllers"
	apimiddleware "aigov-service/api/middleware"
	"aigov-service/service"
	"aigov-service/service/bias"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(service.DB)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 自动检测词表支持外部配置覆盖
	vocabulary, err := bias.LoadVocabulary(os.Getenv("PROTECTED_VOCAB_PATH"))
	if err != nil {
		log.Printf("加载检测词表失败，使用默认词表: %v", err)
		vocabulary = bias.DefaultVocabulary()
	}

	sessionController := controllers.NewSessionController(service.GlobalSessionService)
	fingerprintController := controllers.NewFingerprintController(service.GlobalFingerprintService, service.GlobalSessionService)
	biasController := controllers.NewBiasController(service.GlobalSessionService, vocabulary)
	badgeController := controllers.NewBadgeController(service.GlobalBadgeService, service.GlobalSessionService)
	reportController := controllers.NewReportController(service.GlobalReportService)
	verificationController := controllers.NewVerificationController(service.GlobalVerificationService)

	r.Route("/api", func(r chi.Router) {
		// 分析接口启用限流
		r.Use(apimiddleware.RateLimit(service.GlobalRateLimiter))

		// 数据集上传与会话管理
		r.Post("/upload", sessionController.Upload)
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionController.ListSessions)
			r.Get("/{session_id}", sessionController.GetSession)
			r.Delete("/{session_id}", sessionController.CleanupSession)
			r.Get("/{session_id}/files", sessionController.ListFiles)
			r.Get("/{session_id}/files/{filename}", sessionController.DownloadFile)
		})

		// 数据集指纹
		r.Post("/fingerprint", fingerprintController.Generate)

		// 偏见分析
		r.Post("/analyze/bias", biasController.Analyze)

		// 伦理徽章
		r.Route("/badge", func(r chi.Router) {
			r.Post("/generate", badgeController.Generate)
			r.Post("/svg", badgeController.RenderSVG)
		})

		// 综合报告
		r.Post("/report/comprehensive", reportController.GenerateComprehensive)

		// API密钥管理
		r.Get("/verify_key", verificationController.VerifyKey)
		r.Post("/keys", verificationController.CreateKey)
	})
}
