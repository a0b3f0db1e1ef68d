/*
 * @module service/verification/verification_service
 * @description API密钥验证服务，提供密钥签发、验证与脱敏展示
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/verification_req.md
 * @stateFlow 签发时生成id.secret格式密钥并存储secret哈希 -> 验证时按id查库并比对哈希
 * @rules 明文secret仅在签发时返回一次，数据库只保存bcrypt哈希
 * @dependencies gorm.io/gorm, golang.org/x/crypto/bcrypt, crypto/rand
 * @refs api/controllers/verification_controller
 */

package verification

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"aigov-service/service/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// minKeyLength 参与验证的密钥最小长度
const minKeyLength = 10

// VerificationService API密钥验证服务
type VerificationService struct {
	db *gorm.DB
}

// NewVerificationService 创建验证服务实例
func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// VerifyResult 密钥验证结果
type VerifyResult struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
}

// VerifyKey 验证API密钥
// 密钥格式为 id.secret，按id查找记录后比对secret的bcrypt哈希
func (s *VerificationService) VerifyKey(apiKey string) (*VerifyResult, error) {
	if apiKey == "" {
		return &VerifyResult{Valid: false, Reason: "未提供API密钥"}, nil
	}
	if len(apiKey) < minKeyLength {
		return &VerifyResult{Valid: false, Reason: "API密钥格式无效"}, nil
	}

	parts := strings.SplitN(apiKey, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return &VerifyResult{Valid: false, Reason: "API密钥格式无效"}, nil
	}

	var record models.APIKey
	if err := s.db.First(&record, "id = ?", parts[0]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VerifyResult{Valid: false, Reason: "API密钥不存在"}, nil
		}
		return nil, err
	}

	if !record.IsEnabled {
		return &VerifyResult{Valid: false, Reason: "API密钥已禁用"}, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(record.SecretHash), []byte(parts[1])) != nil {
		return &VerifyResult{Valid: false, Reason: "API密钥不存在"}, nil
	}

	return &VerifyResult{
		Valid:   true,
		Email:   record.Email,
		Name:    record.Name,
		Company: record.Company,
	}, nil
}

// CreateKey 签发新的API密钥，返回记录与完整明文密钥
// 明文密钥仅在此处返回一次
func (s *VerificationService) CreateKey(email, name, company string) (*models.APIKey, string, error) {
	id, err := randomHex(8)
	if err != nil {
		return nil, "", err
	}
	secret, err := randomHex(24)
	if err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	record := &models.APIKey{
		ID:         id,
		SecretHash: string(hashed),
		Email:      email,
		Name:       name,
		Company:    company,
		IsEnabled:  true,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, "", err
	}
	return record, id + "." + secret, nil
}

// MaskKey 返回密钥的脱敏展示形式，用于日志输出
func MaskKey(apiKey string) string {
	if len(apiKey) > 12 {
		return apiKey[:8] + "..." + apiKey[len(apiKey)-4:]
	}
	return "***"
}

// randomHex 生成指定字节数的随机十六进制串
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
