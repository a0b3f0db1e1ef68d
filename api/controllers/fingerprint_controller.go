/*
 * @module api/controllers/fingerprint_controller
 * @description 指纹控制器，提供数据集指纹生成与指纹报告接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/fingerprint_req.md
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

	"aigov-service/service/fingerprint"
	"aigov-service/service/metrics"
	"aigov-service/service/models"
	"aigov-service/service/session"

	"github.com/go-chi/render"
)

// FingerprintController 指纹控制器
type FingerprintController struct {
	fingerprintService *fingerprint.Service
	sessionService     *session.SessionService
}

// NewFingerprintController 创建指纹控制器实例
func NewFingerprintController(fingerprintService *fingerprint.Service, sessionService *session.SessionService) *FingerprintController {
	return &FingerprintController{
		fingerprintService: fingerprintService,
		sessionService:     sessionService,
	}
}

// FingerprintRequest 指纹生成请求
type FingerprintRequest struct {
	SessionID string `json:"session_id"`
}

// Generate 生成数据集指纹
// @Summary 生成数据集指纹
// @Description 为会话中的数据集生成指纹记录，包含文件哈希、内容哈希与模式画像
// @Tags 数据集指纹
// @Accept json
// @Produce json
// @Param request body FingerprintRequest true "指纹生成请求"
// @Success 200 {object} APIResponse{data=models.Fingerprint} "生成成功"
// @Failure 400 {object} APIResponse "请求参数错误或数据集格式不支持"
// @Router /api/fingerprint [post]
func (c *FingerprintController) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FingerprintRequest
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

	fp, err := c.fingerprintService.Generate(filePath)
	metrics.ObserveAnalysis(models.RecordKindFingerprint, start, err)
	if err != nil {
		renderError(w, r, err, "生成数据集指纹失败")
		return
	}

	if err := c.persistFingerprint(req.SessionID, fp); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "保存指纹结果失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "生成数据集指纹成功",
		Data: map[string]interface{}{
			"session_id":  req.SessionID,
			"fingerprint": fp,
			"report":      c.fingerprintService.BuildReport(fp),
		},
	})
}

// persistFingerprint 将指纹结果写入结果目录并持久化分析记录
func (c *FingerprintController) persistFingerprint(sessionID string, fp *models.Fingerprint) error {
	resultsDir, err := c.sessionService.ResultsDir(sessionID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "fingerprint.json"), data, 0o644); err != nil {
		return err
	}

	var content models.JSONB
	if err := json.Unmarshal(data, &content); err != nil {
		return err
	}
	return c.sessionService.SaveResult(&models.AnalysisRecord{
		SessionID: sessionID,
		Kind:      models.RecordKindFingerprint,
		Content:   content,
	})
}
