/*
 * @module service/bias/detector
 * @description 自动检测模块，按词表识别数据集中的受保护属性与目标列
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/bias_req.md
 * @stateFlow 逐列按数据集列顺序匹配 -> 名称命中或取值命中即入选 -> 去重后返回
 * @rules 结果按数据集列顺序返回，保证同一数据集多次检测结果一致
 * @dependencies strings
 * @refs service/bias/analyzer
 */

package bias

import (
	"strings"

	"aigov-service/service/models"
)

// maxProtectedDistinct 按取值判定受保护属性时的唯一值数量上限
const maxProtectedDistinct = 10

// DetectProtectedAttributes 自动检测数据集中的候选受保护属性
// 列名包含词表关键字，或分类列唯一值不超过上限且取值命中词表时入选
func DetectProtectedAttributes(ds *models.Dataset, vocab *Vocabulary) []string {
	detected := make([]string, 0)
	seen := make(map[string]bool)

	for i := range ds.Columns {
		col := &ds.Columns[i]
		if seen[col.Name] {
			continue
		}

		nameLower := strings.ToLower(col.Name)
		matched := false
		for _, kw := range vocab.ProtectedKeywords {
			if strings.Contains(nameLower, kw) {
				matched = true
				break
			}
		}

		if !matched && col.Type == models.ColumnTypeCategorical {
			matched = categoricalLooksProtected(col, vocab)
		}

		if matched {
			detected = append(detected, col.Name)
			seen[col.Name] = true
		}
	}
	return detected
}

// categoricalLooksProtected 判断分类列取值是否命中受保护属性词表
func categoricalLooksProtected(col *models.DatasetColumn, vocab *Vocabulary) bool {
	distinct := make(map[string]bool)
	for _, cell := range col.Cells {
		if cell.IsNull() {
			continue
		}
		distinct[strings.ToLower(cell.CanonicalString())] = true
		if len(distinct) > maxProtectedDistinct {
			return false
		}
	}
	if len(distinct) == 0 {
		return false
	}

	for value := range distinct {
		for _, pv := range vocab.ProtectedValues {
			if strings.Contains(value, pv) {
				return true
			}
		}
	}
	return false
}

// DetectTargetColumn 自动检测候选目标列
// 优先按列名关键字匹配；未命中时选择取值仅为{0,1}的二值数值列；均未命中返回空串
func DetectTargetColumn(ds *models.Dataset, vocab *Vocabulary) string {
	for i := range ds.Columns {
		nameLower := strings.ToLower(ds.Columns[i].Name)
		for _, kw := range vocab.TargetKeywords {
			if strings.Contains(nameLower, kw) {
				return ds.Columns[i].Name
			}
		}
	}

	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.Type != models.ColumnTypeNumeric {
			continue
		}
		if isBinaryZeroOne(col) {
			return col.Name
		}
	}
	return ""
}

// isBinaryZeroOne 判断数值列的非空取值是否恰好为{0,1}
func isBinaryZeroOne(col *models.DatasetColumn) bool {
	distinct := make(map[float64]bool)
	for _, cell := range col.Cells {
		if cell.Kind != models.CellNumeric {
			continue
		}
		if cell.Num != 0 && cell.Num != 1 {
			return false
		}
		distinct[cell.Num] = true
	}
	return len(distinct) == 2
}
