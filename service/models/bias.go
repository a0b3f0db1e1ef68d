/*
 * @module service/models/bias
 * @description 偏见分析记录定义，包括检测发现、评分明细和分析报告结构
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 偏见分析结果由分析器一次性生成并返回，不跨调用共享可变状态
 * @rules 所有评分限制在[0,100]区间；发现列表保持固定顺序以保证推理轨迹可复现
 * @dependencies 无
 * @refs service/bias
 */

package models

// BiasFindingKind 偏见发现的类别
type BiasFindingKind string

const (
	FindingMissingValues   BiasFindingKind = "missing_values"
	FindingClassImbalance  BiasFindingKind = "class_imbalance"
	FindingProtectedParity BiasFindingKind = "protected_parity"
)

// 偏见风险等级
const (
	BiasLevelLow      = "LOW"
	BiasLevelModerate = "MODERATE"
	BiasLevelHigh     = "HIGH"
)

// MissingValueStat 单列缺失值统计
type MissingValueStat struct {
	Column            string  `json:"column"`
	MissingCount      int     `json:"missing_count"`
	MissingPercentage float64 `json:"missing_percentage"`
	Flagged           bool    `json:"flagged"`
}

// ImbalanceInfo 类别不平衡信息
type ImbalanceInfo struct {
	MinClassRatio float64            `json:"min_class_ratio"`
	MaxClassRatio float64            `json:"max_class_ratio"`
	Distribution  map[string]float64 `json:"distribution"`
}

// ParityFinding 受保护属性统计平价检查结果
// 无法完成分组计算的属性记录为Skipped，不中断整体分析
type ParityFinding struct {
	Attribute  string             `json:"attribute"`
	TargetType ColumnType         `json:"target_type,omitempty"`
	ParityDiff float64            `json:"parity_diff"`
	GroupRates map[string]float64 `json:"group_rates,omitempty"`
	Flagged    bool               `json:"flagged"`
	Skipped    bool               `json:"skipped"`
	SkipReason string             `json:"skip_reason,omitempty"`
}

// BiasFinding 偏见检测发现，按类别标记
// 仅与Kind对应的载荷字段有效
type BiasFinding struct {
	Kind              BiasFindingKind `json:"kind"`
	Column            string          `json:"column"`
	MissingPercentage float64         `json:"missing_percentage,omitempty"`
	Imbalance         *ImbalanceInfo  `json:"imbalance,omitempty"`
	Parity            *ParityFinding  `json:"parity,omitempty"`
}

// BasicStatistics 数据集基础统计
type BasicStatistics struct {
	TotalRows            int                `json:"total_rows"`
	TotalColumns         int                `json:"total_columns"`
	DataTypeDistribution map[string]int     `json:"data_type_distribution"`
	TargetDistribution   map[string]float64 `json:"target_distribution,omitempty"`
}

// BiasScoreBreakdown 偏见评分明细
type BiasScoreBreakdown struct {
	BiasScore float64            `json:"bias_score"`
	BiasLevel string             `json:"bias_level"`
	Reasoning []string           `json:"reasoning"`
	Penalties map[string]float64 `json:"penalties"`
}

// BiasAnalysis 偏见分析完整报告
type BiasAnalysis struct {
	TargetColumn        string                    `json:"target_column,omitempty"`
	ProtectedAttributes []string                  `json:"protected_attributes"`
	BasicStatistics     BasicStatistics           `json:"basic_statistics"`
	MissingValues       []MissingValueStat        `json:"missing_values"`
	ClassImbalance      map[string]*ImbalanceInfo `json:"class_imbalance"`
	ProtectedFindings   []ParityFinding           `json:"protected_attribute_findings"`
	Findings            []BiasFinding             `json:"findings"`
	Notes               []string                  `json:"notes,omitempty"`
	BiasScoreAnalysis   BiasScoreBreakdown        `json:"bias_score_analysis"`
}
