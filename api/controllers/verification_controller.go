/*
 * @module api/controllers/verification_controller
 * @description API密钥验证控制器，提供密钥验证与签发接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/verification_req.md
 * @stateFlow HTTP请求处理流程
 * @rules 日志中只输出脱敏后的密钥
 * @dependencies aigov-service/service, github.com/go-chi/render
 * @refs ai_docs/model.md
 */

package controllers

import (
	"log/slog"
	"net/http"

	"aigov-service/service/verification"

	"github.com/go-chi/render"
)

// VerificationController API密钥验证控制器
type VerificationController struct {
	verificationService *verification.VerificationService
}

// NewVerificationController 创建验证控制器实例
func NewVerificationController(verificationService *verification.VerificationService) *VerificationController {
	return &VerificationController{verificationService: verificationService}
}

// VerifyKey 验证API密钥
// @Summary 验证API密钥
// @Description 验证API密钥有效性并返回归属信息
// @Tags 密钥管理
// @Produce json
// @Param api_key query string true "API密钥"
// @Success 200 {object} verification.VerifyResult "验证结果"
// @Failure 400 {object} verification.VerifyResult "密钥缺失或格式无效"
// @Router /api/verify_key [get]
func (c *VerificationController) VerifyKey(w http.ResponseWriter, r *http.Request) {
	apiKey := r.URL.Query().Get("api_key")
	slog.Info("验证API密钥", "api_key", verification.MaskKey(apiKey))

	result, err := c.verificationService.VerifyKey(apiKey)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, verification.VerifyResult{Valid: false, Reason: "数据库查询失败"})
		return
	}

	if !result.Valid {
		switch result.Reason {
		case "API密钥不存在":
			render.Status(r, http.StatusNotFound)
		default:
			render.Status(r, http.StatusBadRequest)
		}
	}
	render.JSON(w, r, result)
}

// CreateKeyRequest 密钥签发请求
type CreateKeyRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// CreateKey 签发API密钥
// @Summary 签发API密钥
// @Description 为用户签发新的API密钥，明文密钥仅在响应中返回一次
// @Tags 密钥管理
// @Accept json
// @Produce json
// @Param request body CreateKeyRequest true "密钥签发请求"
// @Success 200 {object} APIResponse "签发成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Router /api/keys [post]
func (c *VerificationController) CreateKey(w http.ResponseWriter, r *http.Request) {
	var req CreateKeyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil || req.Email == "" {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数格式错误，email必填",
		})
		return
	}

	record, plainKey, err := c.verificationService.CreateKey(req.Email, req.Name, req.Company)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "签发API密钥失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "签发API密钥成功",
		Data: map[string]interface{}{
			"key_id":  record.ID,
			"api_key": plainKey,
			"email":   record.Email,
		},
	})
}
