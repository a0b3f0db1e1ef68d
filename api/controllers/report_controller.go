/*
 * @module api/controllers/report_controller
 * @description 报告控制器，提供综合治理报告生成接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/report_req.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式
 * @dependencies aigov-service/service, github.com/go-chi/render
 * @refs ai_docs/model.md
 */

package controllers

import (
	"net/http"
	"time"

	"aigov-service/service/metrics"
	"aigov-service/service/models"
	"aigov-service/service/report"

	"github.com/go-chi/render"
)

// ReportController 报告控制器
type ReportController struct {
	reportService *report.ReportService
}

// NewReportController 创建报告控制器实例
func NewReportController(reportService *report.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// ComprehensiveReportRequest 综合报告生成请求
type ComprehensiveReportRequest struct {
	SessionID string `json:"session_id"`
	ModelName string `json:"model_name,omitempty"`
}

// GenerateComprehensive 生成综合治理报告
// @Summary 生成综合治理报告
// @Description 汇总会话内的指纹、偏见与徽章结果，生成可读的综合报告
// @Tags 综合报告
// @Accept json
// @Produce json
// @Param request body ComprehensiveReportRequest true "报告生成请求"
// @Success 200 {object} APIResponse "生成成功"
// @Failure 400 {object} APIResponse "会话无分析结果"
// @Router /api/report/comprehensive [post]
func (c *ReportController) GenerateComprehensive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ComprehensiveReportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil || req.SessionID == "" {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误，session_id必填",
		})
		return
	}

	content, err := c.reportService.Generate(req.SessionID, req.ModelName)
	metrics.ObserveAnalysis(models.RecordKindReport, start, err)
	if err != nil {
		renderError(w, r, err, "生成综合报告失败")
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "生成综合报告成功",
		Data: map[string]interface{}{
			"session_id":  req.SessionID,
			"report":      content,
			"report_file": "comprehensive_report.txt",
		},
	})
}
