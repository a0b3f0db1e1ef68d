package controllers

import (
	"net/http"

	"aigov-service/service/models"

	"github.com/go-chi/render"
)

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// PaginatedResponse 分页响应结构
type PaginatedResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"100"`
	Page   int         `json:"page" example:"1"`
	Size   int         `json:"size" example:"10"`
}

// renderError 按错误类型渲染响应
// 格式错误与校验错误映射为400，其余为500
func renderError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := http.StatusInternalServerError
	msg := fallbackMsg
	if models.IsFormatError(err) || models.IsValidationError(err) {
		status = http.StatusBadRequest
		msg = err.Error()
	}
	render.JSON(w, r, APIResponse{
		Status: status,
		Msg:    msg,
	})
}
