/*
 * @module service/bias/analyzer_test
 * @description 偏见分析器单元测试
 * @architecture 测试层
 * @documentReference ai_docs/bias_req.md
 */

package bias

import (
	"testing"
	"time"

	"aigov-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericColumn(name string, values ...float64) models.DatasetColumn {
	cells := make([]models.Cell, 0, len(values))
	for _, v := range values {
		cells = append(cells, models.NumericCell(v))
	}
	return models.DatasetColumn{Name: name, Type: models.ColumnTypeNumeric, Cells: cells}
}

func stringColumn(name string, values ...string) models.DatasetColumn {
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

func repeatColumn(name string, counts map[string]int, order []string) models.DatasetColumn {
	values := make([]string, 0)
	for _, v := range order {
		for i := 0; i < counts[v]; i++ {
			values = append(values, v)
		}
	}
	return stringColumn(name, values...)
}

func TestAnalyze_MissingValuesFlagged(t *testing.T) {
	// income列30%缺失，name列10%缺失
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("income", "1", "2", "3", "4", "5", "6", "7", "", "", ""),
		stringColumn("memo", "a", "b", "c", "d", "e", "f", "g", "h", "i", ""),
	}}

	analysis := Analyze(ds, Options{})
	require.Len(t, analysis.MissingValues, 2)

	// 按缺失率降序
	assert.Equal(t, "income", analysis.MissingValues[0].Column)
	assert.InDelta(t, 30.0, analysis.MissingValues[0].MissingPercentage, 1e-9)
	assert.True(t, analysis.MissingValues[0].Flagged)

	assert.Equal(t, "memo", analysis.MissingValues[1].Column)
	assert.False(t, analysis.MissingValues[1].Flagged)

	require.NotEmpty(t, analysis.Findings)
	assert.Equal(t, models.FindingMissingValues, analysis.Findings[0].Kind)
	assert.Equal(t, "income", analysis.Findings[0].Column)
}

func TestAnalyze_SevereClassImbalance(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		repeatColumn("city", map[string]int{"A": 97, "B": 3}, []string{"A", "B"}),
	}}

	analysis := Analyze(ds, Options{})
	info, ok := analysis.ClassImbalance["city"]
	require.True(t, ok)
	assert.InDelta(t, 0.03, info.MinClassRatio, 1e-9)
	assert.InDelta(t, 0.97, info.MaxClassRatio, 1e-9)
	assert.InDelta(t, 0.03, info.Distribution["B"], 1e-9)
}

func TestAnalyze_BalancedColumnNotFlagged(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		repeatColumn("group", map[string]int{"x": 6, "y": 4}, []string{"x", "y"}),
	}}

	analysis := Analyze(ds, Options{})
	assert.Empty(t, analysis.ClassImbalance)
}

func TestAnalyze_NumericTargetParityFlagged(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "M", "M", "M", "F", "F", "F", "F"),
		numericColumn("approved", 1, 1, 1, 1, 0, 0, 0, 0),
	}}

	analysis := Analyze(ds, Options{
		TargetColumn:        "approved",
		ProtectedAttributes: []string{"gender"},
	})

	require.Len(t, analysis.ProtectedFindings, 1)
	finding := analysis.ProtectedFindings[0]
	assert.Equal(t, "gender", finding.Attribute)
	assert.False(t, finding.Skipped)
	assert.True(t, finding.Flagged)
	assert.InDelta(t, 1.0, finding.ParityDiff, 1e-9)
	assert.InDelta(t, 1.0, finding.GroupRates["M"], 1e-9)
	assert.InDelta(t, 0.0, finding.GroupRates["F"], 1e-9)
}

func TestAnalyze_CategoricalTargetParity(t *testing.T) {
	// M组最高频类别占比1.0，F组0.5，差异超过阈值
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "M", "M", "M", "F", "F", "F", "F"),
		stringColumn("outcome", "yes", "yes", "yes", "yes", "yes", "yes", "no", "no"),
	}}

	analysis := Analyze(ds, Options{
		TargetColumn:        "outcome",
		ProtectedAttributes: []string{"gender"},
	})

	require.Len(t, analysis.ProtectedFindings, 1)
	finding := analysis.ProtectedFindings[0]
	assert.Equal(t, models.ColumnTypeCategorical, finding.TargetType)
	assert.True(t, finding.Flagged)
	assert.InDelta(t, 0.5, finding.ParityDiff, 1e-9)
}

func TestAnalyze_ParitySmallDiffNotFlagged(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "M", "M", "M", "M", "M", "M", "M", "M", "M",
			"F", "F", "F", "F", "F", "F", "F", "F", "F", "F"),
		numericColumn("approved", 1, 1, 1, 1, 1, 0, 0, 0, 0, 0,
			1, 1, 1, 1, 1, 1, 0, 0, 0, 0),
	}}

	analysis := Analyze(ds, Options{
		TargetColumn:        "approved",
		ProtectedAttributes: []string{"gender"},
	})

	require.Len(t, analysis.ProtectedFindings, 1)
	finding := analysis.ProtectedFindings[0]
	assert.False(t, finding.Skipped)
	assert.False(t, finding.Flagged)
	assert.InDelta(t, 0.1, finding.ParityDiff, 1e-9)
}

func TestAnalyze_DatetimeTargetSkipped(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "F"),
		{
			Name: "joined",
			Type: models.ColumnTypeDatetime,
			Cells: []models.Cell{
				models.TimeCell(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
				models.TimeCell(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
	}}

	analysis := Analyze(ds, Options{
		TargetColumn:        "joined",
		ProtectedAttributes: []string{"gender"},
	})

	require.Len(t, analysis.ProtectedFindings, 1)
	finding := analysis.ProtectedFindings[0]
	assert.True(t, finding.Skipped)
	assert.Equal(t, skipReasonIncompatible, finding.SkipReason)
	assert.False(t, finding.Flagged)
}

func TestAnalyze_AbsentProtectedAttributeNoted(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		numericColumn("approved", 1, 0),
	}}

	analysis := Analyze(ds, Options{
		TargetColumn:        "approved",
		ProtectedAttributes: []string{"ghost"},
	})

	require.Len(t, analysis.ProtectedFindings, 1)
	assert.True(t, analysis.ProtectedFindings[0].Skipped)
	assert.Equal(t, skipReasonAttributeAbsent, analysis.ProtectedFindings[0].SkipReason)
	require.NotEmpty(t, analysis.Notes)
	assert.Contains(t, analysis.Notes[0], "ghost")
}

func TestAnalyze_AbsentTargetIgnored(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "F"),
	}}

	analysis := Analyze(ds, Options{
		TargetColumn:        "missing_target",
		ProtectedAttributes: []string{"gender"},
	})

	assert.Empty(t, analysis.TargetColumn)
	assert.Empty(t, analysis.ProtectedFindings)
	assert.NotEmpty(t, analysis.Notes)
}

func TestAnalyze_BasicStatistics(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "M", "F", "F"),
		numericColumn("approved", 1, 1, 1, 0),
	}}

	analysis := Analyze(ds, Options{TargetColumn: "approved"})
	stats := analysis.BasicStatistics
	assert.Equal(t, 4, stats.TotalRows)
	assert.Equal(t, 2, stats.TotalColumns)
	assert.Equal(t, 1, stats.DataTypeDistribution["categorical"])
	assert.InDelta(t, 0.75, stats.TargetDistribution["1"], 1e-9)
	assert.InDelta(t, 0.25, stats.TargetDistribution["0"], 1e-9)
}

func TestAnalyze_Deterministic(t *testing.T) {
	ds := &models.Dataset{Columns: []models.DatasetColumn{
		stringColumn("gender", "M", "M", "M", "F", "", "F", "F", "M", "M", "F"),
		numericColumn("approved", 1, 1, 1, 0, 0, 0, 1, 1, 0, 1),
	}}
	opts := Options{TargetColumn: "approved", ProtectedAttributes: []string{"gender"}}

	first := Analyze(ds, opts)
	for i := 0; i < 3; i++ {
		again := Analyze(ds, opts)
		assert.Equal(t, first.Findings, again.Findings)
		assert.Equal(t, first.BiasScoreAnalysis, again.BiasScoreAnalysis)
	}
}
