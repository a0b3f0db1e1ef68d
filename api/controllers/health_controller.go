/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康与就绪状态检查
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 健康检查无依赖直接返回；就绪检查需数据库连接可用
 * @dependencies net/http, gorm.io/gorm
 * @refs api/routes
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"gorm.io/gorm"
)

// HealthController 健康检查控制器
type HealthController struct {
	db *gorm.DB
}

// NewHealthController 创建健康检查控制器实例
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string    `json:"version" example:"1.0.0"`
	Service   string    `json:"service" example:"aigov-service"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "aigov-service",
	}

	render.JSON(w, r, response)
}

// Ready 就绪检查，校验数据库连接可用
// @Summary 就绪检查
// @Description 检查服务是否就绪（含数据库连接检查）
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "aigov-service",
	}

	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			response.Status = "not_ready"
			render.Status(r, http.StatusServiceUnavailable)
		}
	}

	render.JSON(w, r, response)
}
