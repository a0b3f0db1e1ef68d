/*
 * @module api/controllers/bias_controller
 * @description 偏见分析控制器，提供数据集偏见检测与评分接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/bias_req.md
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

	"aigov-service/service/bias"
	"aigov-service/service/dataset"
	"aigov-service/service/metrics"
	"aigov-service/service/models"
	"aigov-service/service/session"

	"github.com/go-chi/render"
)

// BiasController 偏见分析控制器
type BiasController struct {
	sessionService *session.SessionService
	vocabulary     *bias.Vocabulary
}

// NewBiasController 创建偏见分析控制器实例
func NewBiasController(sessionService *session.SessionService, vocabulary *bias.Vocabulary) *BiasController {
	return &BiasController{
		sessionService: sessionService,
		vocabulary:     vocabulary,
	}
}

// BiasAnalyzeRequest 偏见分析请求
type BiasAnalyzeRequest struct {
	SessionID           string   `json:"session_id"`
	TargetColumn        string   `json:"target_column,omitempty"`
	ProtectedAttributes []string `json:"protected_attributes,omitempty"`
	AutoDetect          bool     `json:"auto_detect"`
}

// Analyze 执行偏见分析
// @Summary 执行偏见分析
// @Description 对会话中的数据集执行缺失值、类别不平衡与统计平价检查并计算偏见评分
// @Tags 偏见分析
// @Accept json
// @Produce json
// @Param request body BiasAnalyzeRequest true "偏见分析请求"
// @Success 200 {object} APIResponse{data=models.BiasAnalysis} "分析成功"
// @Failure 400 {object} APIResponse "请求参数错误或数据集格式不支持"
// @Router /api/analyze/bias [post]
func (c *BiasController) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req BiasAnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil || req.SessionID == "" {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误，session_id必填",
		})
		return
	}

	filePath, err := c.sessionService.DatasetPath(req.SessionID)
	if err != nil {
		renderError(w, r, err, "会话数据集不存在")
		return
	}

	ds, err := dataset.Load(filePath)
	metrics.ObserveAnalysis(models.RecordKindBias, start, err)
	if err != nil {
		renderError(w, r, err, "加载数据集失败")
		return
	}

	analysis := bias.Analyze(ds, bias.Options{
		TargetColumn:        req.TargetColumn,
		ProtectedAttributes: req.ProtectedAttributes,
		AutoDetect:          req.AutoDetect,
		Vocabulary:          c.vocabulary,
	})

	if err := c.persistAnalysis(req.SessionID, analysis); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "保存偏见分析结果失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "偏见分析完成",
		Data:   analysis,
	})
}

// persistAnalysis 将偏见分析结果写入结果目录并持久化分析记录
func (c *BiasController) persistAnalysis(sessionID string, analysis *models.BiasAnalysis) error {
	resultsDir, err := c.sessionService.ResultsDir(sessionID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "bias_analysis_results.json"), data, 0o644); err != nil {
		return err
	}

	var content models.JSONB
	if err := json.Unmarshal(data, &content); err != nil {
		return err
	}
	return c.sessionService.SaveResult(&models.AnalysisRecord{
		SessionID:           sessionID,
		Kind:                models.RecordKindBias,
		TargetColumn:        analysis.TargetColumn,
		ProtectedAttributes: analysis.ProtectedAttributes,
		Content:             content,
	})
}
