/*
 * @module service/bias/analyzer
 * @description 偏见分析器，执行基础统计、缺失值分析、类别不平衡检测和受保护属性统计平价检查
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/bias_req.md
 * @stateFlow 基础统计 -> 缺失值分析 -> 不平衡检测 -> 平价检查 -> 汇总发现 -> 偏见评分
 * @rules 可恢复的检查失败记录为Skipped发现而非错误；发现列表顺序固定可复现
 * @dependencies aigov-service/service/models, sort
 * @refs api/controllers/bias_controller
 */

package bias

import (
	"fmt"
	"sort"

	"aigov-service/service/models"
)

// 检测阈值
const (
	highMissingThreshold      = 20.0 // 缺失率超过该百分比时标记
	imbalanceThreshold        = 0.1  // 少数类占比低于该值时标记不平衡
	imbalanceDistinctLimit    = 10   // 非分类列参与不平衡检测的唯一值上限
	parityCategoricalFlag     = 0.2  // 分类目标的平价差异标记阈值
	parityNumericFlag         = 0.1  // 数值目标的平价差异标记阈值
	skipReasonIncompatible    = "目标列类型不兼容，无法完成统计平价检查"
	skipReasonAttributeAbsent = "受保护属性列不存在于数据集中"
)

// Options 偏见分析选项
type Options struct {
	// TargetColumn 目标列名，空串表示未指定
	TargetColumn string
	// ProtectedAttributes 受保护属性列名列表
	ProtectedAttributes []string
	// AutoDetect 未指定目标列或受保护属性时是否按词表自动检测
	AutoDetect bool
	// Vocabulary 自动检测词表，nil时使用默认词表
	Vocabulary *Vocabulary
}

// Analyze 执行完整偏见分析
func Analyze(ds *models.Dataset, opts Options) *models.BiasAnalysis {
	vocab := opts.Vocabulary
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	target := opts.TargetColumn
	attrs := opts.ProtectedAttributes
	if opts.AutoDetect {
		if target == "" {
			target = DetectTargetColumn(ds, vocab)
		}
		if len(attrs) == 0 {
			attrs = DetectProtectedAttributes(ds, vocab)
		}
	}

	analysis := &models.BiasAnalysis{
		ProtectedAttributes: attrs,
		ClassImbalance:      make(map[string]*models.ImbalanceInfo),
	}

	// 目标列不存在时记录说明并按未指定处理
	if target != "" {
		if _, ok := ds.Column(target); !ok {
			analysis.Notes = append(analysis.Notes,
				fmt.Sprintf("目标列 '%s' 不存在于数据集中，已忽略", target))
			target = ""
		}
	}
	analysis.TargetColumn = target

	analysis.BasicStatistics = basicStatistics(ds, target)
	analysis.MissingValues = missingValuesAnalysis(ds)

	imbalanceOrder := detectClassImbalance(ds, analysis.ClassImbalance)
	analysis.ProtectedFindings = protectedAttributeAnalysis(ds, target, attrs, analysis)

	// 发现列表按固定顺序：缺失值 -> 类别不平衡 -> 统计平价
	for _, stat := range analysis.MissingValues {
		if !stat.Flagged {
			continue
		}
		analysis.Findings = append(analysis.Findings, models.BiasFinding{
			Kind:              models.FindingMissingValues,
			Column:            stat.Column,
			MissingPercentage: stat.MissingPercentage,
		})
	}
	for _, col := range imbalanceOrder {
		analysis.Findings = append(analysis.Findings, models.BiasFinding{
			Kind:      models.FindingClassImbalance,
			Column:    col,
			Imbalance: analysis.ClassImbalance[col],
		})
	}
	for i := range analysis.ProtectedFindings {
		pf := analysis.ProtectedFindings[i]
		analysis.Findings = append(analysis.Findings, models.BiasFinding{
			Kind:   models.FindingProtectedParity,
			Column: pf.Attribute,
			Parity: &pf,
		})
	}

	analysis.BiasScoreAnalysis = ScoreFindings(analysis.Findings, ds.RowCount())
	return analysis
}

// basicStatistics 计算数据集基础统计与目标分布
func basicStatistics(ds *models.Dataset, target string) models.BasicStatistics {
	stats := models.BasicStatistics{
		TotalRows:            ds.RowCount(),
		TotalColumns:         ds.ColumnCount(),
		DataTypeDistribution: make(map[string]int),
	}
	for i := range ds.Columns {
		stats.DataTypeDistribution[string(ds.Columns[i].Type)]++
	}

	if target != "" {
		if col, ok := ds.Column(target); ok {
			stats.TargetDistribution = valueRatios(col)
		}
	}
	return stats
}

// missingValuesAnalysis 统计各列缺失值，按缺失率降序排列
// 缺失率超过阈值的列标记为发现
func missingValuesAnalysis(ds *models.Dataset) []models.MissingValueStat {
	rows := ds.RowCount()
	stats := make([]models.MissingValueStat, 0)
	for i := range ds.Columns {
		col := &ds.Columns[i]
		missing := 0
		for _, cell := range col.Cells {
			if cell.IsNull() {
				missing++
			}
		}
		if missing == 0 {
			continue
		}
		pct := 0.0
		if rows > 0 {
			pct = float64(missing) / float64(rows) * 100
		}
		stats = append(stats, models.MissingValueStat{
			Column:            col.Name,
			MissingCount:      missing,
			MissingPercentage: pct,
			Flagged:           pct > highMissingThreshold,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].MissingPercentage > stats[j].MissingPercentage
	})
	return stats
}

// detectClassImbalance 检测类别不平衡列，返回按数据集列顺序排列的不平衡列名
// 参与检测的列为分类列或唯一值不超过上限的列
func detectClassImbalance(ds *models.Dataset, out map[string]*models.ImbalanceInfo) []string {
	order := make([]string, 0)
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.Type != models.ColumnTypeCategorical && distinctCount(col) > imbalanceDistinctLimit {
			continue
		}

		ratios := valueRatios(col)
		if len(ratios) == 0 {
			continue
		}

		minRatio, maxRatio := ratioBounds(ratios)
		if minRatio >= imbalanceThreshold {
			continue
		}
		out[col.Name] = &models.ImbalanceInfo{
			MinClassRatio: minRatio,
			MaxClassRatio: maxRatio,
			Distribution:  ratios,
		}
		order = append(order, col.Name)
	}
	return order
}

// protectedAttributeAnalysis 对每个受保护属性执行统计平价检查
// 检查按属性给定顺序执行，无法完成的检查记录为Skipped结果
func protectedAttributeAnalysis(ds *models.Dataset, target string, attrs []string, analysis *models.BiasAnalysis) []models.ParityFinding {
	if len(attrs) == 0 {
		return nil
	}
	if target == "" {
		analysis.Notes = append(analysis.Notes, "未指定目标列，跳过统计平价检查")
		return nil
	}

	targetCol, _ := ds.Column(target)
	findings := make([]models.ParityFinding, 0, len(attrs))
	for _, attr := range attrs {
		attrCol, ok := ds.Column(attr)
		if !ok {
			analysis.Notes = append(analysis.Notes,
				fmt.Sprintf("受保护属性 '%s' 不存在于数据集中", attr))
			findings = append(findings, models.ParityFinding{
				Attribute:  attr,
				Skipped:    true,
				SkipReason: skipReasonAttributeAbsent,
			})
			continue
		}
		findings = append(findings, checkStatisticalParity(attrCol, targetCol))
	}
	return findings
}

// checkStatisticalParity 对单个受保护属性执行统计平价检查
// 分类目标比较各群体最高频类别占比差异，数值/布尔目标比较各群体均值差异
func checkStatisticalParity(attrCol, targetCol *models.DatasetColumn) models.ParityFinding {
	finding := models.ParityFinding{
		Attribute:  attrCol.Name,
		TargetType: targetCol.Type,
	}

	switch targetCol.Type {
	case models.ColumnTypeCategorical:
		rates := groupMostCommonRates(attrCol, targetCol)
		if len(rates) == 0 {
			finding.Skipped = true
			finding.SkipReason = skipReasonIncompatible
			return finding
		}
		finding.GroupRates = rates
		_, diff := rateSpread(rates)
		finding.ParityDiff = diff
		finding.Flagged = diff > parityCategoricalFlag
	case models.ColumnTypeNumeric, models.ColumnTypeBoolean:
		rates := groupMeans(attrCol, targetCol)
		if len(rates) == 0 {
			finding.Skipped = true
			finding.SkipReason = skipReasonIncompatible
			return finding
		}
		finding.GroupRates = rates
		_, diff := rateSpread(rates)
		finding.ParityDiff = diff
		finding.Flagged = diff > parityNumericFlag
	default:
		finding.Skipped = true
		finding.SkipReason = skipReasonIncompatible
	}
	return finding
}

// groupMostCommonRates 计算每个群体中目标最高频类别的占比
func groupMostCommonRates(attrCol, targetCol *models.DatasetColumn) map[string]float64 {
	groups := groupTargetCells(attrCol, targetCol)
	rates := make(map[string]float64, len(groups))
	for group, cells := range groups {
		counts := make(map[string]int)
		total := 0
		for _, cell := range cells {
			if cell.IsNull() {
				continue
			}
			counts[cell.CanonicalString()]++
			total++
		}
		if total == 0 {
			continue
		}
		maxCount := 0
		for _, c := range counts {
			if c > maxCount {
				maxCount = c
			}
		}
		rates[group] = float64(maxCount) / float64(total)
	}
	return rates
}

// groupMeans 计算每个群体中目标列的均值（布尔目标按真值比例）
func groupMeans(attrCol, targetCol *models.DatasetColumn) map[string]float64 {
	groups := groupTargetCells(attrCol, targetCol)
	means := make(map[string]float64, len(groups))
	for group, cells := range groups {
		sum := 0.0
		count := 0
		for _, cell := range cells {
			switch cell.Kind {
			case models.CellNumeric:
				sum += cell.Num
				count++
			case models.CellBool:
				if cell.Bool {
					sum++
				}
				count++
			}
		}
		if count == 0 {
			continue
		}
		means[group] = sum / float64(count)
	}
	return means
}

// groupTargetCells 按受保护属性取值对目标列单元格分组，属性为空值的行不参与分组
func groupTargetCells(attrCol, targetCol *models.DatasetColumn) map[string][]models.Cell {
	groups := make(map[string][]models.Cell)
	for i, cell := range attrCol.Cells {
		if cell.IsNull() || i >= len(targetCol.Cells) {
			continue
		}
		key := cell.CanonicalString()
		groups[key] = append(groups[key], targetCol.Cells[i])
	}
	return groups
}

// valueRatios 计算列的取值分布（排除空值，按非空总数归一化）
func valueRatios(col *models.DatasetColumn) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, cell := range col.Cells {
		if cell.IsNull() {
			continue
		}
		counts[cell.CanonicalString()]++
		total++
	}
	if total == 0 {
		return nil
	}
	ratios := make(map[string]float64, len(counts))
	for v, c := range counts {
		ratios[v] = float64(c) / float64(total)
	}
	return ratios
}

// ratioBounds 返回分布中的最小与最大占比
func ratioBounds(ratios map[string]float64) (minR, maxR float64) {
	first := true
	for _, r := range ratios {
		if first {
			minR, maxR = r, r
			first = false
			continue
		}
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
	}
	return minR, maxR
}

// rateSpread 返回群体比率的最大值与极差
func rateSpread(rates map[string]float64) (maxR, diff float64) {
	minR, maxR := ratioBounds(rates)
	return maxR, maxR - minR
}

// distinctCount 统计列的非空唯一值数量
func distinctCount(col *models.DatasetColumn) int {
	distinct := make(map[string]bool)
	for _, cell := range col.Cells {
		if cell.IsNull() {
			continue
		}
		distinct[cell.CanonicalString()] = true
	}
	return len(distinct)
}
