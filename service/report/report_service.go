/*
 * @module service/report/report_service
 * @description 综合报告服务，汇总会话内指纹、偏见与徽章结果生成治理报告
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/report_req.md
 * @stateFlow 读取会话分析记录 -> 按固定章节渲染文本 -> 写入结果目录并持久化记录
 * @rules 缺失的分析章节跳过不报错；报告内容从已存结果渲染，不重新执行分析
 * @dependencies aigov-service/service/session, github.com/spf13/cast
 * @refs api/controllers/report_controller
 */

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"aigov-service/service/models"
	"aigov-service/service/session"

	"github.com/spf13/cast"
)

const sectionDivider = "----------------------------------------"

// ReportService 综合报告服务
type ReportService struct {
	sessionService *session.SessionService
}

// NewReportService 创建报告服务实例
func NewReportService(sessionService *session.SessionService) *ReportService {
	return &ReportService{sessionService: sessionService}
}

// Generate 生成会话的综合治理报告
// 报告写入会话结果目录并作为分析记录持久化，返回报告文本
func (s *ReportService) Generate(sessionID, modelName string) (string, error) {
	records, err := s.sessionService.ListResults(sessionID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", models.NewValidationError("会话 %s 没有可汇总的分析结果", sessionID)
	}

	if modelName == "" {
		modelName = "未命名模型"
	}

	var sb strings.Builder
	writeLine := func(format string, args ...interface{}) {
		sb.WriteString(fmt.Sprintf(format, args...))
		sb.WriteByte('\n')
	}

	writeLine(strings.Repeat("=", 80))
	writeLine("AI治理综合评估报告")
	writeLine(strings.Repeat("=", 80))
	writeLine("模型: %s", modelName)
	writeLine("生成时间: %s", time.Now().UTC().Format(time.RFC3339))
	writeLine("会话ID: %s", sessionID)
	writeLine("")

	fingerprint := latestByKind(records, models.RecordKindFingerprint)
	badge := latestByKind(records, models.RecordKindBadge)
	bias := latestByKind(records, models.RecordKindBias)

	if fingerprint != nil {
		writeFingerprintSection(writeLine, fingerprint.Content)
	}
	if badge != nil {
		writeBadgeSection(writeLine, badge.Content)
	}
	if bias != nil {
		writeBiasSection(writeLine, bias.Content)
	}

	writeLine("结论与建议")
	writeLine(sectionDivider)
	compliance := "未知"
	if badge != nil {
		if cast.ToBool(badge.Content["passes_threshold"]) {
			compliance = "合规"
		} else {
			compliance = "不合规"
		}
	}
	writeLine("整体合规状态: %s", compliance)
	writeLine("")
	writeLine("后续步骤:")
	writeLine("  1. 审查所有已识别的问题与建议")
	writeLine("  2. 落实相应改进措施")
	writeLine("  3. 定期开展审计与持续监控")
	writeLine("  4. 完善治理过程文档")
	writeLine("")
	writeLine(strings.Repeat("=", 80))
	writeLine("报告结束")
	writeLine(strings.Repeat("=", 80))

	content := sb.String()

	resultsDir, err := s.sessionService.ResultsDir(sessionID)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(resultsDir, "comprehensive_report.txt"), []byte(content), 0o644); err != nil {
		return "", err
	}

	record := &models.AnalysisRecord{
		SessionID: sessionID,
		Kind:      models.RecordKindReport,
		ModelName: modelName,
		Content:   models.JSONB{"report": content, "compliance": compliance},
	}
	if err := s.sessionService.SaveResult(record); err != nil {
		return "", err
	}
	return content, nil
}

// latestByKind 取指定类型的最新记录（记录按创建时间升序排列）
func latestByKind(records []models.AnalysisRecord, kind string) *models.AnalysisRecord {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Kind == kind {
			return &records[i]
		}
	}
	return nil
}

// toStringMapFloat64 将任意值转换为 map[string]float64
func toStringMapFloat64(i interface{}) map[string]float64 {
	raw := cast.ToStringMap(i)
	result := make(map[string]float64, len(raw))
	for key, value := range raw {
		result[key] = cast.ToFloat64(value)
	}
	return result
}

func writeFingerprintSection(writeLine func(string, ...interface{}), content models.JSONB) {
	writeLine("数据集指纹")
	writeLine(sectionDivider)

	fileInfo := cast.ToStringMap(content["file_info"])
	fpInfo := cast.ToStringMap(content["fingerprint_info"])
	schema := cast.ToStringMap(content["schema"])
	summary := cast.ToStringMap(schema["summary_stats"])

	writeLine("数据集: %s", cast.ToString(fileInfo["filename"]))
	writeLine("文件哈希(SHA-256): %s", cast.ToString(fpInfo["file_hash_sha256"]))
	writeLine("内容哈希(SHA-256): %s", cast.ToString(fpInfo["content_hash_sha256"]))
	writeLine("文件大小: %.2f MB", cast.ToFloat64(fileInfo["file_size_mb"]))
	writeLine("规模: %d 行 × %d 列",
		cast.ToInt(summary["total_rows"]), cast.ToInt(summary["total_columns"]))
	writeLine("数据质量: %.2f%% 空值", cast.ToFloat64(summary["overall_null_percentage"]))
	writeLine("")
}

func writeBadgeSection(writeLine func(string, ...interface{}), content models.JSONB) {
	writeLine("伦理徽章评估")
	writeLine(sectionDivider)
	writeLine("综合得分: %.1f/100", cast.ToFloat64(content["overall_score"]))
	writeLine("徽章等级: %s", cast.ToString(content["badge_level"]))
	if cast.ToBool(content["passes_threshold"]) {
		writeLine("是否通过阈值: 是")
	} else {
		writeLine("是否通过阈值: 否")
	}
	writeLine("")

	scores := toStringMapFloat64(content["category_scores"])
	if len(scores) > 0 {
		writeLine("类别得分:")
		for _, key := range models.BadgeCategoryKeys {
			if score, ok := scores[key]; ok {
				writeLine("  %s: %.1f/100", models.BadgeCategoryNames[key], score)
			}
		}
		writeLine("")
	}

	recommendations := cast.ToStringSlice(content["recommendations"])
	if len(recommendations) > 0 {
		writeLine("改进建议:")
		for _, rec := range recommendations {
			writeLine("  • %s", rec)
		}
		writeLine("")
	}
}

func writeBiasSection(writeLine func(string, ...interface{}), content models.JSONB) {
	writeLine("偏见分析摘要")
	writeLine(sectionDivider)

	scoreAnalysis := cast.ToStringMap(content["bias_score_analysis"])
	writeLine("偏见评分: %.1f/100", cast.ToFloat64(scoreAnalysis["bias_score"]))
	writeLine("风险等级: %s", cast.ToString(scoreAnalysis["bias_level"]))
	writeLine("")

	reasoning := cast.ToStringSlice(scoreAnalysis["reasoning"])
	if len(reasoning) > 0 {
		writeLine("评分推理:")
		for _, line := range reasoning {
			writeLine("  %s", line)
		}
		writeLine("")
	}

	penalties := toStringMapFloat64(scoreAnalysis["penalties"])
	if len(penalties) > 0 {
		keys := make([]string, 0, len(penalties))
		for key := range penalties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		writeLine("扣分明细:")
		for _, key := range keys {
			if penalties[key] > 0 {
				writeLine("  • %s: -%.1f分", key, penalties[key])
			}
		}
		writeLine("")
	}

	attrs := cast.ToStringSlice(content["protected_attributes"])
	if len(attrs) > 0 {
		writeLine("受保护属性: %s", strings.Join(attrs, ", "))
		writeLine("")
	}
}
