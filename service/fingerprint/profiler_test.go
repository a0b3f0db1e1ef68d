/*
 * @module service/fingerprint/profiler_test
 * @description 模式画像器单元测试
 * @architecture 测试层
 * @documentReference ai_docs/fingerprint_req.md
 */

package fingerprint

import (
	"testing"
	"time"

	"aigov-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSchema_NumericColumn(t *testing.T) {
	ds := buildTestDataset(numericColumn("score", 10, 20, 30, 40))

	schema := AnalyzeSchema(ds)
	profile := schema.Columns["score"]
	require.NotNil(t, profile)

	assert.Equal(t, "numeric", profile.Dtype)
	assert.Equal(t, 4, profile.NonNullCount)
	assert.Equal(t, 0, profile.NullCount)
	assert.Equal(t, 4, profile.UniqueCount)

	require.NotNil(t, profile.Mean)
	assert.InDelta(t, 25.0, *profile.Mean, 1e-9)
	require.NotNil(t, profile.Median)
	assert.InDelta(t, 25.0, *profile.Median, 1e-9)
	require.NotNil(t, profile.Q25)
	assert.InDelta(t, 17.5, *profile.Q25, 1e-9)
	require.NotNil(t, profile.Q75)
	assert.InDelta(t, 32.5, *profile.Q75, 1e-9)
	require.NotNil(t, profile.Std)
	assert.InDelta(t, 12.9099444874, *profile.Std, 1e-6)
	require.NotNil(t, profile.Min)
	assert.InDelta(t, 10.0, *profile.Min, 1e-9)
	require.NotNil(t, profile.Max)
	assert.InDelta(t, 40.0, *profile.Max, 1e-9)
}

func TestAnalyzeSchema_SingleValueNoStd(t *testing.T) {
	ds := buildTestDataset(numericColumn("score", 42))

	profile := AnalyzeSchema(ds).Columns["score"]
	require.NotNil(t, profile)
	assert.Nil(t, profile.Std)
	require.NotNil(t, profile.Median)
	assert.InDelta(t, 42.0, *profile.Median, 1e-9)
}

func TestAnalyzeSchema_NullPercentage(t *testing.T) {
	ds := buildTestDataset(stringColumn("city", "beijing", "", "shanghai", ""))

	profile := AnalyzeSchema(ds).Columns["city"]
	require.NotNil(t, profile)
	assert.Equal(t, 2, profile.NullCount)
	assert.InDelta(t, 50.0, profile.NullPercentage, 1e-9)
	assert.Equal(t, 2, profile.UniqueCount)
}

func TestAnalyzeSchema_CategoricalTopValues(t *testing.T) {
	ds := buildTestDataset(stringColumn("tag", "a", "a", "a", "b", "b", "c", "d", "e", "f", "g"))

	profile := AnalyzeSchema(ds).Columns["tag"]
	require.NotNil(t, profile)
	require.Len(t, profile.TopValues, 5)
	assert.Equal(t, 3, profile.TopValues["a"])
	assert.Equal(t, 2, profile.TopValues["b"])
	// 频次相同时按字典序取前K个
	assert.Contains(t, profile.TopValues, "c")
	assert.Contains(t, profile.TopValues, "d")
	assert.Contains(t, profile.TopValues, "e")
	assert.NotContains(t, profile.TopValues, "g")
}

func TestAnalyzeSchema_BooleanColumn(t *testing.T) {
	ds := buildTestDataset(models.DatasetColumn{
		Name: "active",
		Type: models.ColumnTypeBoolean,
		Cells: []models.Cell{
			models.BoolCell(true),
			models.BoolCell(true),
			models.BoolCell(false),
			models.NullCell(),
		},
	})

	profile := AnalyzeSchema(ds).Columns["active"]
	require.NotNil(t, profile)
	require.NotNil(t, profile.TrueCount)
	assert.Equal(t, 2, *profile.TrueCount)
	require.NotNil(t, profile.FalseCount)
	assert.Equal(t, 1, *profile.FalseCount)
	require.NotNil(t, profile.TruePercentage)
	assert.InDelta(t, 50.0, *profile.TruePercentage, 1e-9)
}

func TestAnalyzeSchema_DatetimeColumn(t *testing.T) {
	ds := buildTestDataset(models.DatasetColumn{
		Name: "joined",
		Type: models.ColumnTypeDatetime,
		Cells: []models.Cell{
			models.TimeCell(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			models.TimeCell(time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC)),
		},
	})

	profile := AnalyzeSchema(ds).Columns["joined"]
	require.NotNil(t, profile)
	require.NotNil(t, profile.MinDate)
	assert.Equal(t, "2023-01-01T00:00:00Z", *profile.MinDate)
	require.NotNil(t, profile.MaxDate)
	assert.Equal(t, "2023-01-11T00:00:00Z", *profile.MaxDate)
	require.NotNil(t, profile.DateRangeDays)
	assert.Equal(t, 10, *profile.DateRangeDays)
}

func TestAnalyzeSchema_AllNullColumn(t *testing.T) {
	ds := buildTestDataset(models.DatasetColumn{
		Name:  "empty",
		Type:  models.ColumnTypeUnknown,
		Cells: []models.Cell{models.NullCell(), models.NullCell()},
	})

	profile := AnalyzeSchema(ds).Columns["empty"]
	require.NotNil(t, profile)
	assert.Equal(t, "unknown", profile.Dtype)
	assert.Equal(t, 2, profile.NullCount)
	assert.Nil(t, profile.Mean)
	assert.Nil(t, profile.TopValues)
	assert.Nil(t, profile.MinDate)
}

func TestAnalyzeSchema_DuplicateRows(t *testing.T) {
	ds := buildTestDataset(
		stringColumn("name", "a", "a", "b"),
		numericColumn("v", 1, 1, 2),
	)

	schema := AnalyzeSchema(ds)
	assert.Equal(t, 1, schema.DataQuality.DuplicateRows)
	assert.InDelta(t, 100.0/3, schema.DataQuality.DuplicatePercentage, 1e-9)
}

func TestAnalyzeSchema_EmptyDataset(t *testing.T) {
	ds := &models.Dataset{}

	schema := AnalyzeSchema(ds)
	assert.Equal(t, 0, schema.SummaryStats.TotalRows)
	assert.Equal(t, 0, schema.SummaryStats.TotalColumns)
	assert.Equal(t, 0.0, schema.SummaryStats.OverallNullPercentage)
	assert.Equal(t, 0, schema.DataQuality.DuplicateRows)
	assert.Empty(t, schema.Columns)
}

func TestAnalyzeSchema_SummaryAndDistribution(t *testing.T) {
	ds := buildTestDataset(
		stringColumn("name", "a", "", "c", "d"),
		numericColumn("v", 1, 2, 3, 4),
	)

	schema := AnalyzeSchema(ds)
	assert.Equal(t, 8, schema.SummaryStats.TotalCells)
	assert.Equal(t, 1, schema.SummaryStats.TotalNullCells)
	assert.InDelta(t, 12.5, schema.SummaryStats.OverallNullPercentage, 1e-9)
	assert.Equal(t, 1, schema.DataTypeDistribution["categorical"])
	assert.Equal(t, 1, schema.DataTypeDistribution["numeric"])
	assert.Equal(t, 1, schema.DataQuality.ColumnsWithNulls)
	assert.Equal(t, 1, schema.DataQuality.ColumnsAllUnique)
}
