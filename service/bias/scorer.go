/*
 * @module service/bias/scorer
 * @description 偏见评分器，从检测发现计算0-100偏见评分、风险等级与推理轨迹
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/bias_req.md
 * @stateFlow 满分100起算 -> 按固定顺序扣分（缺失值/不平衡/平价/规模） -> 限幅取整 -> 定级
 * @rules 扣分顺序与发现顺序固定，相同发现集合必须产生字节一致的评分结果
 * @dependencies aigov-service/service/models, math
 * @refs service/bias/analyzer
 */

package bias

import (
	"fmt"
	"math"

	"aigov-service/service/models"
)

// 评分扣分参数
const (
	missingPenaltyCap      = 5.0  // 单列缺失值扣分上限
	severeImbalanceRatio   = 0.05 // 少数类占比低于该值为严重不平衡
	severeImbalancePenalty = 10.0
	moderatePenalty        = 5.0
	severeParityPenalty    = 10.0
	smallDatasetRows       = 1000
	moderateDatasetRows    = 5000
)

// 分类目标与数值目标的严重平价偏差阈值
const (
	severeParityCategorical = 0.3
	severeParityNumeric     = 0.2
)

// ScoreFindings 从检测发现计算偏见评分明细
// 发现列表的顺序决定推理轨迹的顺序，调用方保证顺序固定
func ScoreFindings(findings []models.BiasFinding, rowCount int) models.BiasScoreBreakdown {
	score := 100.0
	reasoning := make([]string, 0)

	// 因素1：缺失值（每列最多扣5分）
	missingPenalty := 0.0
	missingLines := make([]string, 0)
	for _, f := range findings {
		if f.Kind != models.FindingMissingValues {
			continue
		}
		missingPenalty += math.Min(missingPenaltyCap, f.MissingPercentage/4)
		missingLines = append(missingLines,
			fmt.Sprintf("    - %s: 缺失率 %.1f%%", f.Column, f.MissingPercentage))
	}
	if len(missingLines) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("缺失值: -%.1f分", missingPenalty))
		reasoning = append(reasoning, "  • 高缺失率可能因排除特定群体而引入偏见")
		reasoning = append(reasoning, missingLines...)
	}
	score -= missingPenalty

	// 因素2：类别不平衡（严重扣10分，中度扣5分）
	imbalancePenalty := 0.0
	severeLines := make([]string, 0)
	moderateLines := make([]string, 0)
	for _, f := range findings {
		if f.Kind != models.FindingClassImbalance || f.Imbalance == nil {
			continue
		}
		line := fmt.Sprintf("    - %s: 少数类占比 %.1f%%", f.Column, f.Imbalance.MinClassRatio*100)
		if f.Imbalance.MinClassRatio < severeImbalanceRatio {
			imbalancePenalty += severeImbalancePenalty
			severeLines = append(severeLines, line)
		} else {
			imbalancePenalty += moderatePenalty
			moderateLines = append(moderateLines, line)
		}
	}
	if len(severeLines) > 0 || len(moderateLines) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("类别不平衡: -%.1f分", imbalancePenalty))
		reasoning = append(reasoning, "  • 类别不平衡可能导致模型预测产生偏见")
		if len(severeLines) > 0 {
			reasoning = append(reasoning, "  • 检测到严重不平衡:")
			reasoning = append(reasoning, severeLines...)
		}
		if len(moderateLines) > 0 {
			reasoning = append(reasoning, "  • 检测到中度不平衡:")
			reasoning = append(reasoning, moderateLines...)
		}
	}
	score -= imbalancePenalty

	// 因素3：受保护属性统计平价（严重扣10分，中度扣5分）
	protectedPenalty := 0.0
	for _, f := range findings {
		if f.Kind != models.FindingProtectedParity || f.Parity == nil {
			continue
		}
		p := f.Parity
		if p.Skipped {
			if p.SkipReason == skipReasonIncompatible {
				reasoning = append(reasoning,
					fmt.Sprintf("受保护属性分析 (%s): 因数据类型不兼容已跳过", p.Attribute))
			}
			continue
		}
		if !p.Flagged {
			continue
		}
		severeThreshold := severeParityNumeric
		label := "统计平价偏差"
		if p.TargetType == models.ColumnTypeCategorical {
			severeThreshold = severeParityCategorical
			label = "分布偏差"
		}
		if p.ParityDiff > severeThreshold {
			protectedPenalty += severeParityPenalty
			reasoning = append(reasoning, fmt.Sprintf("受保护属性偏见 (%s): -10分", p.Attribute))
			reasoning = append(reasoning, fmt.Sprintf("  • 检测到严重%s: %.3f", label, p.ParityDiff))
		} else {
			protectedPenalty += moderatePenalty
			reasoning = append(reasoning, fmt.Sprintf("受保护属性偏见 (%s): -5分", p.Attribute))
			reasoning = append(reasoning, fmt.Sprintf("  • 检测到中度%s: %.3f", label, p.ParityDiff))
		}
	}
	score -= protectedPenalty

	// 因素4：数据集规模
	sizePenalty := 0.0
	if rowCount < smallDatasetRows {
		sizePenalty = 10
		reasoning = append(reasoning, "数据集规模: -10分")
		reasoning = append(reasoning, "  • 数据集规模过小，可能无法充分代表所有群体")
	} else if rowCount < moderateDatasetRows {
		sizePenalty = 5
		reasoning = append(reasoning, "数据集规模: -5分")
		reasoning = append(reasoning, "  • 数据集规模中等，建议扩大样本以提升代表性")
	}
	score -= sizePenalty

	score = math.Max(0, math.Min(100, score))
	score = math.Round(score*10) / 10

	return models.BiasScoreBreakdown{
		BiasScore: score,
		BiasLevel: biasLevel(score),
		Reasoning: reasoning,
		Penalties: map[string]float64{
			"missing_values":       missingPenalty,
			"class_imbalance":      imbalancePenalty,
			"protected_attributes": protectedPenalty,
			"dataset_size":         sizePenalty,
		},
	}
}

// biasLevel 按评分确定风险等级
func biasLevel(score float64) string {
	switch {
	case score >= 80:
		return models.BiasLevelLow
	case score >= 60:
		return models.BiasLevelModerate
	default:
		return models.BiasLevelHigh
	}
}
