/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference ai_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aigov-service/service/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建内存SQLite测试数据库并迁移全部模型
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	err = db.AutoMigrate(
		&models.AnalysisSession{},
		&models.AnalysisRecord{},
		&models.APIKey{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清空所有表的数据
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"analysis_sessions",
		"analysis_records",
		"api_keys",
	}
	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// SessionOption 会话选项函数类型
type SessionOption func(*models.AnalysisSession)

// CreateSession 创建测试分析会话
func (f *TestDataFactory) CreateSession(opts ...SessionOption) *models.AnalysisSession {
	session := &models.AnalysisSession{
		ID:            uuid.New().String(),
		Filename:      "test_dataset.csv",
		FileSizeBytes: 1024,
		FileExtension: ".csv",
		Status:        models.SessionStatusUploaded,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	for _, opt := range opts {
		opt(session)
	}

	if err := f.DB.Create(session).Error; err != nil {
		panic(fmt.Sprintf("failed to create test session: %v", err))
	}
	return session
}

// CreateAnalysisRecord 创建测试分析记录
func (f *TestDataFactory) CreateAnalysisRecord(sessionID, kind string, content models.JSONB) *models.AnalysisRecord {
	record := &models.AnalysisRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Kind:      kind,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := f.DB.Create(record).Error; err != nil {
		panic(fmt.Sprintf("failed to create test analysis record: %v", err))
	}
	return record
}

// WriteTempCSV 在临时目录写入CSV文件并返回路径
func WriteTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入测试CSV失败: %v", err)
	}
	return path
}

// BuildNumericColumn 构造数值列
func BuildNumericColumn(name string, values ...float64) models.DatasetColumn {
	cells := make([]models.Cell, 0, len(values))
	for _, v := range values {
		cells = append(cells, models.NumericCell(v))
	}
	return models.DatasetColumn{Name: name, Type: models.ColumnTypeNumeric, Cells: cells}
}

// BuildStringColumn 构造分类列，空串视为空值
func BuildStringColumn(name string, values ...string) models.DatasetColumn {
	cells := make([]models.Cell, 0, len(values))
	for _, v := range values {
		if v == "" {
			cells = append(cells, models.NullCell())
		} else {
			cells = append(cells, models.StringCell(v))
		}
	}
	return models.DatasetColumn{Name: name, Type: models.ColumnTypeCategorical, Cells: cells}
}
