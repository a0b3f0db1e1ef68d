/*
 * @module api/controllers/session_controller
 * @description 会话控制器，提供数据集上传、会话查询、文件下载与会话清理接口
 * @architecture 分层架构 - 控制器层
 * @documentReference ai_docs/session_req.md
 * @stateFlow HTTP请求处理流程
 * @rules 统一的错误处理和响应格式
 * @dependencies aigov-service/service, github.com/go-chi/chi/v5
 * @refs ai_docs/model.md
 */

package controllers

import (
	"net/http"
	"strconv"

	"aigov-service/service/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// maxUploadBytes 上传文件大小上限（64MB）
const maxUploadBytes = 64 << 20

// SessionController 会话控制器
type SessionController struct {
	sessionService *session.SessionService
}

// NewSessionController 创建会话控制器实例
func NewSessionController(sessionService *session.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// Upload 上传数据集并创建分析会话
// @Summary 上传数据集
// @Description 上传CSV或JSON数据集文件，创建新的分析会话
// @Tags 会话管理
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "数据集文件（CSV或JSON）"
// @Success 200 {object} APIResponse{data=models.AnalysisSession} "上传成功"
// @Failure 400 {object} APIResponse "文件缺失或格式不支持"
// @Router /api/upload [post]
func (c *SessionController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "解析上传表单失败",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "未提供上传文件",
		})
		return
	}
	defer file.Close()

	sess, err := c.sessionService.CreateSession(header.Filename, file)
	if err != nil {
		renderError(w, r, err, "创建分析会话失败")
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "上传成功",
		Data:   sess,
	})
}

// ListSessions 获取会话列表
// @Summary 获取会话列表
// @Description 分页获取分析会话列表
// @Tags 会话管理
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(10)
// @Success 200 {object} PaginatedResponse{data=[]models.AnalysisSession} "获取成功"
// @Failure 500 {object} APIResponse "服务器内部错误"
// @Router /api/sessions [get]
func (c *SessionController) ListSessions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 10
	}

	sessions, total, err := c.sessionService.ListSessions(page, size)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取会话列表失败",
		})
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取会话列表成功",
		Data:   sessions,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetSession 获取会话详情
// @Summary 获取会话详情
// @Description 根据会话ID获取会话信息及分析记录
// @Tags 会话管理
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} APIResponse "获取成功"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /api/sessions/{session_id} [get]
func (c *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	sess, err := c.sessionService.GetSession(sessionID)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusNotFound,
			Msg:    "会话不存在",
		})
		return
	}

	records, err := c.sessionService.ListResults(sessionID)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取会话分析记录失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "获取会话详情成功",
		Data: map[string]interface{}{
			"session": sess,
			"records": records,
		},
	})
}

// ListFiles 列出会话文件
// @Summary 列出会话文件
// @Description 列出会话目录下的上传文件与分析结果文件
// @Tags 会话管理
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} APIResponse{data=[]session.FileEntry} "获取成功"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /api/sessions/{session_id}/files [get]
func (c *SessionController) ListFiles(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	files, err := c.sessionService.ListFiles(sessionID)
	if err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusNotFound,
			Msg:    "会话不存在或文件列表读取失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "获取文件列表成功",
		Data:   files,
	})
}

// DownloadFile 下载会话文件
// @Summary 下载会话文件
// @Description 下载会话目录下的指定文件
// @Tags 会话管理
// @Produce octet-stream
// @Param session_id path string true "会话ID"
// @Param filename path string true "文件名"
// @Success 200 {file} binary "文件内容"
// @Failure 400 {object} APIResponse "非法文件名"
// @Failure 404 {object} APIResponse "文件不存在"
// @Router /api/sessions/{session_id}/files/{filename} [get]
func (c *SessionController) DownloadFile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	filename := chi.URLParam(r, "filename")

	path, err := c.sessionService.ResolveFile(sessionID, filename)
	if err != nil {
		renderError(w, r, err, "文件不存在")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	http.ServeFile(w, r, path)
}

// CleanupSession 清理会话
// @Summary 清理会话
// @Description 删除会话及其全部文件与分析记录
// @Tags 会话管理
// @Produce json
// @Param session_id path string true "会话ID"
// @Success 200 {object} APIResponse "清理成功"
// @Failure 404 {object} APIResponse "会话不存在"
// @Router /api/sessions/{session_id} [delete]
func (c *SessionController) CleanupSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	if err := c.sessionService.Cleanup(sessionID); err != nil {
		render.JSON(w, r, APIResponse{
			Status: http.StatusNotFound,
			Msg:    "会话不存在或清理失败",
		})
		return
	}

	render.JSON(w, r, APIResponse{
		Status: http.StatusOK,
		Msg:    "会话清理成功",
	})
}
