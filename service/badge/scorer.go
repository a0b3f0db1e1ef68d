/*
 * @module service/badge/scorer
 * @description 伦理徽章评分器，校验类别评分并计算综合得分、徽章等级与改进建议
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/badge_req.md
 * @stateFlow 校验请求 -> 综合得分（加权或覆盖） -> 确定等级 -> 生成建议 -> 徽章数据
 * @rules 六个类别评分全部必填且在[0,100]内；建议按类别固定顺序生成保证可复现
 * @dependencies aigov-service/service/models, time
 * @refs api/controllers/badge_controller
 */

package badge

import (
	"fmt"
	"time"

	"aigov-service/service/models"
)

// Service 徽章服务
type Service struct{}

// NewService 创建徽章服务
func NewService() *Service {
	return &Service{}
}

// ValidateRequest 校验徽章生成请求
// 六个固定类别评分必须全部存在且在[0,100]区间，不允许未知类别
func ValidateRequest(req *models.BadgeRequest) error {
	if req.ModelName == "" {
		return models.NewValidationError("模型名称不能为空")
	}
	for _, key := range models.BadgeCategoryKeys {
		score, ok := req.CategoryScores[key]
		if !ok {
			return models.NewValidationError("缺少类别评分: %s", key)
		}
		if score < 0 || score > 100 {
			return models.NewValidationError("类别 %s 的评分 %v 超出[0,100]区间", key, score)
		}
	}
	for key := range req.CategoryScores {
		if _, ok := models.BadgeCategoryWeights[key]; !ok {
			return models.NewValidationError("未知的评分类别: %s", key)
		}
	}
	if req.OverallScore != nil && (*req.OverallScore < 0 || *req.OverallScore > 100) {
		return models.NewValidationError("综合得分 %v 超出[0,100]区间", *req.OverallScore)
	}
	if req.Threshold != nil && (*req.Threshold < 0 || *req.Threshold > 100) {
		return models.NewValidationError("通过阈值 %v 超出[0,100]区间", *req.Threshold)
	}
	return nil
}

// CalculateOverallScore 按类别权重计算综合得分
// 没有任何类别命中权重表时退化为简单平均，空评分返回0
func CalculateOverallScore(categoryScores map[string]float64) float64 {
	if len(categoryScores) == 0 {
		return 0
	}

	totalWeighted := 0.0
	totalWeight := 0.0
	for _, key := range models.BadgeCategoryKeys {
		score, ok := categoryScores[key]
		if !ok {
			continue
		}
		totalWeighted += score * models.BadgeCategoryWeights[key]
		totalWeight += models.BadgeCategoryWeights[key]
	}

	if totalWeight == 0 {
		sum := 0.0
		for _, score := range categoryScores {
			sum += score
		}
		return sum / float64(len(categoryScores))
	}
	return totalWeighted / totalWeight
}

// DetermineBadgeLevel 按综合得分确定徽章等级模板
// 从最高等级开始选择第一个满足最低分数的等级
func DetermineBadgeLevel(score float64) models.BadgeTemplate {
	for _, tpl := range models.BadgeTemplates {
		if score >= tpl.MinScore {
			return tpl
		}
	}
	return models.BadgeTemplates[len(models.BadgeTemplates)-1]
}

// Generate 生成完整徽章数据
// 请求提供overall_score时直接使用覆盖值，否则按类别加权计算
func (s *Service) Generate(req *models.BadgeRequest) (*models.BadgeData, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	overall := CalculateOverallScore(req.CategoryScores)
	if req.OverallScore != nil {
		overall = *req.OverallScore
	}
	threshold := models.DefaultBadgeThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	tpl := DetermineBadgeLevel(overall)
	return &models.BadgeData{
		ModelName:       req.ModelName,
		OverallScore:    overall,
		BadgeLevel:      tpl.Level,
		PassesThreshold: overall >= threshold,
		Threshold:       threshold,
		CategoryScores:  req.CategoryScores,
		BadgeConfig:     tpl,
		Recommendations: buildRecommendations(req.CategoryScores, overall),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// buildRecommendations 按评分生成改进建议，类别按固定顺序遍历
func buildRecommendations(categoryScores map[string]float64, overall float64) []string {
	recommendations := make([]string, 0)
	if overall < 60 {
		recommendations = append(recommendations, "整体伦理合规性亟需显著改进")
	}

	for _, key := range models.BadgeCategoryKeys {
		score, ok := categoryScores[key]
		if !ok {
			continue
		}
		name := models.BadgeCategoryNames[key]
		if score < 50 {
			recommendations = append(recommendations, fmt.Sprintf("「%s」亟需重点改进", name))
		} else if score < 70 {
			recommendations = append(recommendations, fmt.Sprintf("建议加强「%s」相关措施", name))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "保持当前伦理标准并持续监控")
	}
	return recommendations
}
