/*
 * @module service/models/session
 * @description 会话与分析结果持久化模型定义，包括上传会话、分析记录和API密钥
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 上传创建会话 -> 各分析写入分析记录 -> 过期清理删除会话及记录
 * @rules 会话ID使用UUID；分析记录内容以JSONB存储保证可追溯
 * @dependencies gorm.io/gorm, github.com/google/uuid, github.com/lib/pq
 * @refs service/session, service/verification
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// 会话状态
const (
	SessionStatusUploaded = "uploaded"
	SessionStatusAnalyzed = "analyzed"
)

// 分析记录类型
const (
	RecordKindFingerprint = "fingerprint"
	RecordKindBias        = "bias"
	RecordKindBadge       = "badge"
	RecordKindReport      = "report"
)

// AnalysisSession 分析会话模型
type AnalysisSession struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	Filename      string    `gorm:"not null" json:"filename"`
	FileSizeBytes int64     `gorm:"not null;default:0" json:"file_size_bytes"`
	FileExtension string    `gorm:"size:16" json:"file_extension"`
	Status        string    `gorm:"not null;default:'uploaded';size:32" json:"status"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate 创建前钩子
func (s *AnalysisSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// AnalysisRecord 分析结果记录模型
type AnalysisRecord struct {
	ID                  string         `gorm:"type:uuid;primary_key" json:"id"`
	SessionID           string         `gorm:"type:uuid;index;not null" json:"session_id"`
	Kind                string         `gorm:"not null;size:32" json:"kind"` // fingerprint/bias/badge/report
	ModelName           string         `gorm:"size:255" json:"model_name,omitempty"`
	TargetColumn        string         `gorm:"size:255" json:"target_column,omitempty"`
	ProtectedAttributes pq.StringArray `gorm:"type:text[]" json:"protected_attributes,omitempty"`
	Content             JSONB          `gorm:"type:jsonb" json:"content"`
	CreatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// BeforeCreate 创建前钩子
func (r *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// APIKey API密钥模型
// 密钥格式为 id.secret，仅存储secret的bcrypt哈希
type APIKey struct {
	ID         string    `gorm:"primary_key;size:64" json:"id"`
	SecretHash string    `gorm:"not null" json:"-"`
	Email      string    `gorm:"size:255" json:"email"`
	Name       string    `gorm:"size:255" json:"name"`
	Company    string    `gorm:"size:255" json:"company"`
	IsEnabled  bool      `gorm:"not null;default:true" json:"is_enabled"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
