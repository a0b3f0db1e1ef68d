/*
 * @module service/models/badge
 * @description 伦理徽章记录定义，包括类别权重、徽章等级模板和徽章数据结构
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 徽章数据由徽章评分服务按请求生成，无跨调用状态
 * @rules 六个类别评分全部必填且限制在[0,100]；徽章等级按固定阈值从高到低选择
 * @dependencies 无
 * @refs service/badge
 */

package models

// BadgeCategoryKeys 六个固定伦理类别的键（固定顺序，用于确定性输出）
var BadgeCategoryKeys = []string{
	"bias_fairness",
	"transparency",
	"privacy",
	"accountability",
	"robustness",
	"human_oversight",
}

// BadgeCategoryNames 类别键到显示名称的映射
var BadgeCategoryNames = map[string]string{
	"bias_fairness":   "偏见与公平",
	"transparency":    "透明度",
	"privacy":         "隐私保护",
	"accountability":  "问责机制",
	"robustness":      "稳健性",
	"human_oversight": "人工监督",
}

// BadgeCategoryWeights 类别加权系数（合计为1.0）
var BadgeCategoryWeights = map[string]float64{
	"bias_fairness":   0.25,
	"transparency":    0.15,
	"privacy":         0.20,
	"accountability":  0.15,
	"robustness":      0.15,
	"human_oversight": 0.10,
}

// BadgeTemplate 徽章等级模板（颜色与标签用于SVG渲染）
type BadgeTemplate struct {
	Level       string  `json:"level"`
	Color       string  `json:"color"`
	TextColor   string  `json:"text_color"`
	BorderColor string  `json:"border_color"`
	Label       string  `json:"label"`
	MinScore    float64 `json:"min_score"`
}

// BadgeTemplates 徽章等级模板表，按最低分数从高到低排列
var BadgeTemplates = []BadgeTemplate{
	{Level: "EXCELLENT", Color: "#2E8B57", TextColor: "#FFFFFF", BorderColor: "#1F5F3F", Label: "EXCELLENT", MinScore: 90},
	{Level: "GOOD", Color: "#4169E1", TextColor: "#FFFFFF", BorderColor: "#2E4BC7", Label: "GOOD", MinScore: 75},
	{Level: "SATISFACTORY", Color: "#FFD700", TextColor: "#000000", BorderColor: "#E6C200", Label: "SATISFACTORY", MinScore: 60},
	{Level: "NEEDS_IMPROVEMENT", Color: "#FF8C00", TextColor: "#FFFFFF", BorderColor: "#E67E00", Label: "NEEDS IMPROVEMENT", MinScore: 40},
	{Level: "INSUFFICIENT", Color: "#DC143C", TextColor: "#FFFFFF", BorderColor: "#B71C1C", Label: "INSUFFICIENT", MinScore: 0},
}

// DefaultBadgeThreshold 默认通过阈值
const DefaultBadgeThreshold = 60.0

// BadgeRequest 徽章生成请求
type BadgeRequest struct {
	ModelName      string             `json:"model_name"`
	CategoryScores map[string]float64 `json:"category_scores"`
	Threshold      *float64           `json:"threshold,omitempty"`
	OverallScore   *float64           `json:"overall_score,omitempty"`
}

// BadgeData 徽章完整数据
type BadgeData struct {
	ModelName       string             `json:"model_name"`
	OverallScore    float64            `json:"overall_score"`
	BadgeLevel      string             `json:"badge_level"`
	PassesThreshold bool               `json:"passes_threshold"`
	Threshold       float64            `json:"threshold"`
	CategoryScores  map[string]float64 `json:"category_scores"`
	BadgeConfig     BadgeTemplate      `json:"badge_config"`
	Recommendations []string           `json:"recommendations"`
	GeneratedAt     string             `json:"generated_at"`
}
