/*
 * @module api/controllers/badge_controller
 * @description 徽章控制器，提供伦理徽章生成与SVG渲染接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/badge_req.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式
 * @dependencies aigov-service/service, github.com/go-chi/render
 * @refs ai_docs/model.md
 */

package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"aigov-service/service/badge"
	"aigov-service/service/metrics"
	"aigov-service/service/models"
	"aigov-service/service/session"

	"github.com/go-chi/render"
)

// BadgeController 徽章控制器
type BadgeController struct {
	badgeService   *badge.Service
	sessionService *session.SessionService
}

// NewBadgeController 创建徽章控制器实例
func NewBadgeController(badgeService *badge.Service, sessionService *session.SessionService) *BadgeController {
	return &BadgeController{
		badgeService:   badgeService,
		sessionService: sessionService,
	}
}

// BadgeGenerateRequest 徽章生成请求
type BadgeGenerateRequest struct {
	SessionID      string             `json:"session_id,omitempty"`
	ModelName      string             `json:"model_name"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Threshold      *float64           `json:"threshold,omitempty"`
	OverallScore   *float64           `json:"overall_score,omitempty"`
}

// Generate 生成伦理徽章
// @Summary 生成伦理徽章
// @Description 按六个伦理类别评分计算综合得分与徽章等级，附带改进建议
// @Tags 伦理徽章
// @Accept json
// @Produce json
// @Param request body BadgeGenerateRequest true "徽章生成请求"
// @Success 200 {object} APIResponse{data=models.BadgeData} "生成成功"
// @Failure 400 {object} APIResponse "类别评分缺失或越界"
// @Router /api/badge/generate [post]
func (c *BadgeController) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BadgeGenerateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	data, err := c.badgeService.Generate(&models.BadgeRequest{
		ModelName:      req.ModelName,
		CategoryScores: req.CategoryScores,
		Threshold:      req.Threshold,
		OverallScore:   req.OverallScore,
	})
	metrics.ObserveAnalysis(models.RecordKindBadge, start, err)
	if err != nil {
		renderError(w, r, err, "生成伦理徽章失败")
		return
	}

	// 关联会话时持久化徽章结果
	if req.SessionID != "" {
		if err := c.persistBadge(req.SessionID, data); err != nil {
			render.JSON(w, r, APIResponse{
				Status: http.StatusInternalServerError,
				Msg:    "保存徽章结果失败",
			})
			return
		}
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "生成伦理徽章成功",
		Data:   data,
	})
}

// RenderSVG 生成伦理徽章SVG图
// @Summary 生成伦理徽章SVG
// @Description 按徽章生成请求直接渲染SVG矢量图
// @Tags 伦理徽章
// @Accept json
// @Produce image/svg+xml
// @Param request body BadgeGenerateRequest true "徽章生成请求"
// @Success 200 {string} string "SVG内容"
// @Failure 400 {object} APIResponse "类别评分缺失或越界"
// @Router /api/badge/svg [post]
func (c *BadgeController) RenderSVG(w http.ResponseWriter, r *http.Request) {
	var req BadgeGenerateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误",
		})
		return
	}

	data, err := c.badgeService.Generate(&models.BadgeRequest{
		ModelName:      req.ModelName,
		CategoryScores: req.CategoryScores,
		Threshold:      req.Threshold,
		OverallScore:   req.OverallScore,
	})
	if err != nil {
		renderError(w, r, err, "生成伦理徽章失败")
		return
	}

	svg, err := badge.CreateSVGBadge(data)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "渲染SVG徽章失败",
		})
		return
	}

	if req.SessionID != "" {
		if resultsDir, err := c.sessionService.ResultsDir(req.SessionID); err == nil {
			_ = os.WriteFile(filepath.Join(resultsDir, "ethical_badge.svg"), []byte(svg), 0o644)
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

// persistBadge 将徽章结果写入结果目录并持久化分析记录
func (c *BadgeController) persistBadge(sessionID string, data *models.BadgeData) error {
	resultsDir, err := c.sessionService.ResultsDir(sessionID)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "ethical_badge.json"), raw, 0o644); err != nil {
		return err
	}

	var content models.JSONB
	if err := json.Unmarshal(raw, &content); err != nil {
		return err
	}
	return c.sessionService.SaveResult(&models.AnalysisRecord{
		SessionID: sessionID,
		Kind:      models.RecordKindBadge,
		ModelName: data.ModelName,
		Content:   content,
	})
}
