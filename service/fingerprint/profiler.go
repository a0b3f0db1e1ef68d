/*
 * @module service/fingerprint/profiler
 * @description 模式画像器，计算每列及数据集级的描述性统计
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/fingerprint_req.md
 * @stateFlow 数据集 -> 逐列按语义类型分派统计 -> 数据集级汇总 -> 模式信息
 * @rules 纯函数，不修改数据集；空列聚合值为null而非NaN；除零场景全部显式防护
 * @dependencies aigov-service/service/models, math, sort
 * @refs service/fingerprint/service
 */

package fingerprint

import (
	"math"
	"sort"
	"strings"

	"aigov-service/service/models"
)

// topValueCount 分类列高频值统计的数量上限
const topValueCount = 5

// AnalyzeSchema 分析数据集模式，计算列画像与数据集级统计
func AnalyzeSchema(ds *models.Dataset) models.SchemaInfo {
	rows := ds.RowCount()
	cols := ds.ColumnCount()

	schema := models.SchemaInfo{
		Columns:              make(map[string]*models.ColumnProfile, cols),
		DataTypeDistribution: make(map[string]int),
	}

	totalNullCells := 0
	columnsWithNulls := 0
	columnsAllUnique := 0
	columnsSingleValue := 0

	for i := range ds.Columns {
		col := &ds.Columns[i]
		profile := profileColumn(col, rows)
		schema.Columns[col.Name] = profile
		schema.DataTypeDistribution[string(col.Type)]++

		totalNullCells += profile.NullCount
		if profile.NullCount > 0 {
			columnsWithNulls++
		}
		if rows > 0 && profile.UniqueCount == rows {
			columnsAllUnique++
		}
		if profile.UniqueCount == 1 {
			columnsSingleValue++
		}
	}

	totalCells := rows * cols
	overallNullPct := 0.0
	if totalCells > 0 {
		overallNullPct = float64(totalNullCells) / float64(totalCells) * 100
	}

	duplicateRows := countDuplicateRows(ds)
	duplicatePct := 0.0
	if rows > 0 {
		duplicatePct = float64(duplicateRows) / float64(rows) * 100
	}

	schema.SummaryStats = models.SummaryStats{
		TotalRows:             rows,
		TotalColumns:          cols,
		MemoryUsageMB:         estimateMemoryMB(ds),
		TotalCells:            totalCells,
		TotalNullCells:        totalNullCells,
		OverallNullPercentage: overallNullPct,
	}
	schema.DataQuality = models.DataQuality{
		ColumnsWithNulls:    columnsWithNulls,
		ColumnsAllUnique:    columnsAllUnique,
		ColumnsSingleValue:  columnsSingleValue,
		DuplicateRows:       duplicateRows,
		DuplicatePercentage: duplicatePct,
	}
	return schema
}

// profileColumn 计算单列画像，按语义类型穷举分派
func profileColumn(col *models.DatasetColumn, rows int) *models.ColumnProfile {
	nullCount := 0
	distinct := make(map[string]bool)
	for _, cell := range col.Cells {
		if cell.IsNull() {
			nullCount++
		} else {
			distinct[cell.CanonicalString()] = true
		}
	}

	profile := &models.ColumnProfile{
		Dtype:        string(col.Type),
		NonNullCount: rows - nullCount,
		NullCount:    nullCount,
		UniqueCount:  len(distinct),
	}
	if rows > 0 {
		profile.NullPercentage = float64(nullCount) / float64(rows) * 100
		profile.UniquePercentage = float64(len(distinct)) / float64(rows) * 100
	}

	switch col.Type {
	case models.ColumnTypeNumeric:
		profileNumeric(col, profile)
	case models.ColumnTypeCategorical:
		profileCategorical(col, profile)
	case models.ColumnTypeDatetime:
		profileDatetime(col, profile)
	case models.ColumnTypeBoolean:
		profileBoolean(col, profile, rows)
	case models.ColumnTypeUnknown:
		// 全空列，无类型特定聚合
	}
	return profile
}

// profileNumeric 数值列聚合：min/max/mean/median/std/q25/q75
func profileNumeric(col *models.DatasetColumn, profile *models.ColumnProfile) {
	values := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if cell.Kind == models.CellNumeric {
			values = append(values, cell.Num)
		}
	}
	if len(values) == 0 {
		return
	}

	sort.Float64s(values)
	minV := values[0]
	maxV := values[len(values)-1]

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	profile.Min = floatPtr(minV)
	profile.Max = floatPtr(maxV)
	profile.Mean = floatPtr(mean)
	profile.Median = floatPtr(quantile(values, 0.5))
	profile.Q25 = floatPtr(quantile(values, 0.25))
	profile.Q75 = floatPtr(quantile(values, 0.75))

	// 样本标准差，单个样本时无法计算
	if len(values) > 1 {
		sq := 0.0
		for _, v := range values {
			sq += (v - mean) * (v - mean)
		}
		profile.Std = floatPtr(math.Sqrt(sq / float64(len(values)-1)))
	}
}

// profileCategorical 分类列聚合：高频值、平均/最大字符串长度
func profileCategorical(col *models.DatasetColumn, profile *models.ColumnProfile) {
	counts := make(map[string]int)
	totalLen := 0
	maxLen := 0
	nonNull := 0
	for _, cell := range col.Cells {
		if cell.IsNull() {
			continue
		}
		v := cell.CanonicalString()
		counts[v]++
		nonNull++
		length := len([]rune(v))
		totalLen += length
		if length > maxLen {
			maxLen = length
		}
	}
	if nonNull == 0 {
		return
	}

	profile.TopValues = topValues(counts, topValueCount)
	profile.AvgLength = floatPtr(float64(totalLen) / float64(nonNull))
	profile.MaxLength = intPtr(maxLen)
}

// profileDatetime 时间列聚合：最早/最晚时间与跨度天数
func profileDatetime(col *models.DatasetColumn, profile *models.ColumnProfile) {
	var minT, maxT *models.Cell
	for i := range col.Cells {
		cell := &col.Cells[i]
		if cell.Kind != models.CellTime {
			continue
		}
		if minT == nil || cell.Time.Before(minT.Time) {
			minT = cell
		}
		if maxT == nil || cell.Time.After(maxT.Time) {
			maxT = cell
		}
	}
	if minT == nil || maxT == nil {
		return
	}

	minStr := minT.CanonicalString()
	maxStr := maxT.CanonicalString()
	rangeDays := int(maxT.Time.Sub(minT.Time).Hours() / 24)
	profile.MinDate = &minStr
	profile.MaxDate = &maxStr
	profile.DateRangeDays = &rangeDays
}

// profileBoolean 布尔列聚合：真/假计数与真值占比
func profileBoolean(col *models.DatasetColumn, profile *models.ColumnProfile, rows int) {
	trueCount := 0
	falseCount := 0
	for _, cell := range col.Cells {
		if cell.Kind != models.CellBool {
			continue
		}
		if cell.Bool {
			trueCount++
		} else {
			falseCount++
		}
	}
	profile.TrueCount = intPtr(trueCount)
	profile.FalseCount = intPtr(falseCount)
	if rows > 0 {
		profile.TruePercentage = floatPtr(float64(trueCount) / float64(rows) * 100)
	}
}

// quantile 计算分位数，使用线性插值（与常见统计库一致）
// 调用方保证values已升序且非空
func quantile(values []float64, q float64) float64 {
	if len(values) == 1 {
		return values[0]
	}
	pos := q * float64(len(values)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return values[lower]
	}
	frac := pos - float64(lower)
	return values[lower]*(1-frac) + values[upper]*frac
}

// topValues 取出现频次最高的K个值，频次相同时按值字典序保证确定性
func topValues(counts map[string]int, k int) map[string]int {
	type pair struct {
		value string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for v, c := range counts {
		pairs = append(pairs, pair{v, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].value < pairs[j].value
	})

	top := make(map[string]int, k)
	for i, p := range pairs {
		if i >= k {
			break
		}
		top[p.value] = p.count
	}
	return top
}

// countDuplicateRows 统计完全重复的行数（与首次出现的行相同的行计为重复）
func countDuplicateRows(ds *models.Dataset) int {
	rows := ds.RowCount()
	if rows == 0 || ds.ColumnCount() == 0 {
		return 0
	}

	seen := make(map[string]bool, rows)
	duplicates := 0
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		sb.Reset()
		for j := range ds.Columns {
			if j > 0 {
				sb.WriteByte(0x1f)
			}
			sb.WriteString(ds.Columns[j].Cells[i].CanonicalString())
		}
		key := sb.String()
		if seen[key] {
			duplicates++
		} else {
			seen[key] = true
		}
	}
	return duplicates
}

// estimateMemoryMB 估算数据集内存占用（MB）
func estimateMemoryMB(ds *models.Dataset) float64 {
	bytes := 0
	for i := range ds.Columns {
		for _, cell := range ds.Columns[i].Cells {
			switch cell.Kind {
			case models.CellNull:
				bytes += 1
			case models.CellNumeric:
				bytes += 8
			case models.CellString:
				bytes += 16 + len(cell.Str)
			case models.CellBool:
				bytes += 1
			case models.CellTime:
				bytes += 16
			}
		}
	}
	return float64(bytes) / 1024 / 1024
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
