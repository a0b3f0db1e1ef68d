/*
 * @module service/session/session_service
 * @description 分析会话服务，管理数据集上传、会话目录、分析结果持久化与会话清理
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/session_req.md
 * @stateFlow 上传创建会话 -> 各分析结果写入会话 -> 按需下载结果文件 -> 过期或手动清理
 * @rules 上传文件扩展名必须在允许列表内；文件访问路径必须限制在会话目录内
 * @dependencies aigov-service/service/models, gorm.io/gorm, github.com/google/uuid
 * @refs api/controllers/session_controller
 */

package session

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aigov-service/service/dataset"
	"aigov-service/service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService 分析会话服务
type SessionService struct {
	db         *gorm.DB
	uploadDir  string
	resultsDir string
}

// NewSessionService 创建会话服务实例
func NewSessionService(db *gorm.DB, uploadDir, resultsDir string) *SessionService {
	return &SessionService{db: db, uploadDir: uploadDir, resultsDir: resultsDir}
}

// FileEntry 会话文件条目
type FileEntry struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Kind      string `json:"kind"` // upload或result
}

// CreateSession 创建分析会话并保存上传的数据集文件
func (s *SessionService) CreateSession(filename string, src io.Reader) (*models.AnalysisSession, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !dataset.SupportedExtensions[ext] {
		return nil, models.NewFormatError("不支持的文件格式: %s，仅支持CSV和JSON", ext)
	}

	session := &models.AnalysisSession{
		ID:            uuid.New().String(),
		Filename:      filepath.Base(filename),
		FileExtension: ext,
		Status:        models.SessionStatusUploaded,
	}

	sessionDir := filepath.Join(s.uploadDir, session.ID)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, err
	}

	dst, err := os.Create(filepath.Join(sessionDir, session.Filename))
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.RemoveAll(sessionDir)
		return nil, err
	}
	session.FileSizeBytes = written

	if err := s.db.Create(session).Error; err != nil {
		os.RemoveAll(sessionDir)
		return nil, err
	}
	return session, nil
}

// GetSession 根据ID获取会话
func (s *SessionService) GetSession(id string) (*models.AnalysisSession, error) {
	var session models.AnalysisSession
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListSessions 分页获取会话列表
func (s *SessionService) ListSessions(page, pageSize int) ([]models.AnalysisSession, int64, error) {
	var sessions []models.AnalysisSession
	var total int64

	if err := s.db.Model(&models.AnalysisSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.db.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// DatasetPath 获取会话上传数据集的文件路径
func (s *SessionService) DatasetPath(sessionID string) (string, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.uploadDir, session.ID, session.Filename)
	if _, err := os.Stat(path); err != nil {
		return "", models.NewFormatError("会话数据集文件不存在: %v", err)
	}
	return path, nil
}

// ResultsDir 获取并确保会话结果目录存在
func (s *SessionService) ResultsDir(sessionID string) (string, error) {
	dir := filepath.Join(s.resultsDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// SaveResult 保存分析结果记录并将会话标记为已分析
func (s *SessionService) SaveResult(record *models.AnalysisRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return err
	}
	return s.db.Model(&models.AnalysisSession{}).
		Where("id = ?", record.SessionID).
		Updates(map[string]interface{}{
			"status":     models.SessionStatusAnalyzed,
			"updated_at": time.Now(),
		}).Error
}

// GetLatestResult 获取会话中指定类型的最新分析结果
func (s *SessionService) GetLatestResult(sessionID, kind string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := s.db.Where("session_id = ? AND kind = ?", sessionID, kind).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListResults 获取会话的全部分析结果记录
func (s *SessionService) ListResults(sessionID string) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := s.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// ListFiles 列出会话目录下的全部文件（上传与结果）
func (s *SessionService) ListFiles(sessionID string) ([]FileEntry, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	entries := make([]FileEntry, 0)
	appendDir := func(dir, kind string) error {
		items, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.IsDir() {
				continue
			}
			info, err := item.Info()
			if err != nil {
				continue
			}
			entries = append(entries, FileEntry{
				Name:      item.Name(),
				SizeBytes: info.Size(),
				Kind:      kind,
			})
		}
		return nil
	}

	if err := appendDir(filepath.Join(s.uploadDir, sessionID), "upload"); err != nil {
		return nil, err
	}
	if err := appendDir(filepath.Join(s.resultsDir, sessionID), "result"); err != nil {
		return nil, err
	}
	return entries, nil
}

// ResolveFile 解析会话文件的下载路径
// 文件名不允许包含路径分隔符，防止目录穿越
func (s *SessionService) ResolveFile(sessionID, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", models.NewValidationError("非法的文件名: %s", filename)
	}
	if _, err := s.GetSession(sessionID); err != nil {
		return "", err
	}

	for _, dir := range []string{
		filepath.Join(s.resultsDir, sessionID),
		filepath.Join(s.uploadDir, sessionID),
	} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", models.NewFormatError("文件不存在: %s", filename)
}

// Cleanup 清理会话，删除会话目录、分析记录与会话本身
func (s *SessionService) Cleanup(sessionID string) error {
	if _, err := s.GetSession(sessionID); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(s.uploadDir, sessionID)); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.resultsDir, sessionID)); err != nil {
		return err
	}

	if err := s.db.Where("session_id = ?", sessionID).Delete(&models.AnalysisRecord{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.AnalysisSession{}, "id = ?", sessionID).Error
}

// CleanupExpired 清理创建时间早于保留期的会话，返回清理数量
func (s *SessionService) CleanupExpired(ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	var expired []models.AnalysisSession
	if err := s.db.Where("created_at < ?", cutoff).Find(&expired).Error; err != nil {
		return 0, err
	}

	cleaned := 0
	for _, session := range expired {
		if err := s.Cleanup(session.ID); err != nil {
			return cleaned, err
		}
		cleaned++
	}
	return cleaned, nil
}
