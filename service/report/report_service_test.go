/*
 * @module service/report/report_service_test
 * @description 综合报告服务单元测试
 * @architecture 测试层
 * @documentReference ai_docs/report_req.md
 */

package report

import (
	"os"
	"path/filepath"
	"testing"

	"aigov-service/service/models"
	"aigov-service/service/session"
	"aigov-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*ReportService, *session.SessionService, *testutil.TestDataFactory, string) {
	t.Helper()
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	base := t.TempDir()
	resultsDir := filepath.Join(base, "results")
	sessionService := session.NewSessionService(tdb.DB, filepath.Join(base, "uploads"), resultsDir)
	return NewReportService(sessionService), sessionService, testutil.NewTestDataFactory(tdb.DB), resultsDir
}

func seedFullSession(factory *testutil.TestDataFactory) *models.AnalysisSession {
	s := factory.CreateSession()
	factory.CreateAnalysisRecord(s.ID, models.RecordKindFingerprint, models.JSONB{
		"file_info": map[string]interface{}{
			"filename":     "test_dataset.csv",
			"file_size_mb": 0.5,
		},
		"fingerprint_info": map[string]interface{}{
			"file_hash_sha256":    "filehash",
			"content_hash_sha256": "contenthash",
		},
		"schema": map[string]interface{}{
			"summary_stats": map[string]interface{}{
				"total_rows":              100,
				"total_columns":           5,
				"overall_null_percentage": 2.5,
			},
		},
	})
	factory.CreateAnalysisRecord(s.ID, models.RecordKindBias, models.JSONB{
		"bias_score_analysis": map[string]interface{}{
			"bias_score": 72.5,
			"bias_level": models.BiasLevelModerate,
			"reasoning":  []interface{}{"缺失值: -5.0分"},
			"penalties": map[string]interface{}{
				"missing_values":       5.0,
				"class_imbalance":      0.0,
				"protected_attributes": 0.0,
				"dataset_size":         10.0,
			},
		},
		"protected_attributes": []interface{}{"gender", "age"},
	})
	factory.CreateAnalysisRecord(s.ID, models.RecordKindBadge, models.JSONB{
		"overall_score":    82.0,
		"badge_level":      "GOOD",
		"passes_threshold": true,
		"category_scores": map[string]interface{}{
			"bias_fairness": 80.0,
			"privacy":       85.0,
		},
		"recommendations": []interface{}{"保持当前伦理标准并持续监控"},
	})
	return s
}

func TestGenerate_FullReport(t *testing.T) {
	svc, _, factory, resultsDir := newTestServices(t)
	s := seedFullSession(factory)

	content, err := svc.Generate(s.ID, "credit-model")
	require.NoError(t, err)

	assert.Contains(t, content, "AI治理综合评估报告")
	assert.Contains(t, content, "模型: credit-model")
	assert.Contains(t, content, "数据集指纹")
	assert.Contains(t, content, "文件哈希(SHA-256): filehash")
	assert.Contains(t, content, "规模: 100 行 × 5 列")
	assert.Contains(t, content, "伦理徽章评估")
	assert.Contains(t, content, "综合得分: 82.0/100")
	assert.Contains(t, content, "是否通过阈值: 是")
	assert.Contains(t, content, "偏见与公平: 80.0/100")
	assert.Contains(t, content, "偏见分析摘要")
	assert.Contains(t, content, "偏见评分: 72.5/100")
	assert.Contains(t, content, "受保护属性: gender, age")
	assert.Contains(t, content, "整体合规状态: 合规")
	assert.Contains(t, content, "报告结束")

	// 报告写入会话结果目录
	data, err := os.ReadFile(filepath.Join(resultsDir, s.ID, "comprehensive_report.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestGenerate_PersistsReportRecord(t *testing.T) {
	svc, sessionService, factory, _ := newTestServices(t)
	s := seedFullSession(factory)

	content, err := svc.Generate(s.ID, "credit-model")
	require.NoError(t, err)

	record, err := sessionService.GetLatestResult(s.ID, models.RecordKindReport)
	require.NoError(t, err)
	assert.Equal(t, "credit-model", record.ModelName)
	assert.Equal(t, content, record.Content["report"])
	assert.Equal(t, "合规", record.Content["compliance"])
}

func TestGenerate_DefaultModelName(t *testing.T) {
	svc, _, factory, _ := newTestServices(t)
	s := seedFullSession(factory)

	content, err := svc.Generate(s.ID, "")
	require.NoError(t, err)
	assert.Contains(t, content, "模型: 未命名模型")
}

func TestGenerate_PartialResults(t *testing.T) {
	svc, _, factory, _ := newTestServices(t)
	s := factory.CreateSession()
	factory.CreateAnalysisRecord(s.ID, models.RecordKindBadge, models.JSONB{
		"overall_score":    55.0,
		"badge_level":      "NEEDS_IMPROVEMENT",
		"passes_threshold": false,
	})

	content, err := svc.Generate(s.ID, "demo")
	require.NoError(t, err)
	// 缺失的章节跳过不报错
	assert.NotContains(t, content, "数据集指纹")
	assert.NotContains(t, content, "偏见分析摘要")
	assert.Contains(t, content, "是否通过阈值: 否")
	assert.Contains(t, content, "整体合规状态: 不合规")
}

func TestGenerate_NoResults(t *testing.T) {
	svc, _, factory, _ := newTestServices(t)
	s := factory.CreateSession()

	_, err := svc.Generate(s.ID, "demo")
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
}
