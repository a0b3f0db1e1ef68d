/*
 * @module service/fingerprint/service_test
 * @description 指纹服务单元测试
 * @architecture 测试层
 * @documentReference ai_docs/fingerprint_req.md
 */

package fingerprint

import (
	"testing"

	"aigov-service/service/models"
	"aigov-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "name,age,city\nalice,30,beijing\nbob,25,shanghai\ncarol,28,beijing\n"

func TestGenerate(t *testing.T) {
	path := testutil.WriteTempCSV(t, "sample.csv", sampleCSV)
	svc := NewService()

	fp, err := svc.Generate(path)
	require.NoError(t, err)

	assert.Equal(t, "sample.csv", fp.FileInfo.Filename)
	assert.Equal(t, ".csv", fp.FileInfo.FileExtension)
	assert.Equal(t, int64(len(sampleCSV)), fp.FileInfo.FileSizeBytes)
	assert.Equal(t, fp.FileInfo.CreationTime, fp.FileInfo.ModificationTime)

	assert.Equal(t, models.FingerprintGeneratorVersion, fp.FingerprintInfo.GeneratorVersion)
	assert.Len(t, fp.FingerprintInfo.FileHashSHA256, 64)
	assert.Len(t, fp.FingerprintInfo.ContentHashSHA256, 64)

	assert.Equal(t, 3, fp.Schema.SummaryStats.TotalRows)
	assert.Equal(t, 3, fp.Schema.SummaryStats.TotalColumns)
	assert.Contains(t, fp.Schema.Columns, "age")
}

func TestGenerate_SameContentSameHashes(t *testing.T) {
	svc := NewService()

	first, err := svc.Generate(testutil.WriteTempCSV(t, "a.csv", sampleCSV))
	require.NoError(t, err)
	second, err := svc.Generate(testutil.WriteTempCSV(t, "b.csv", sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, first.FingerprintInfo.FileHashSHA256, second.FingerprintInfo.FileHashSHA256)
	assert.Equal(t, first.FingerprintInfo.ContentHashSHA256, second.FingerprintInfo.ContentHashSHA256)
}

func TestGenerate_UnsupportedFile(t *testing.T) {
	path := testutil.WriteTempCSV(t, "data.parquet", "not really parquet")

	_, err := NewService().Generate(path)
	require.Error(t, err)
	assert.True(t, models.IsFormatError(err))
}

func TestBuildReport(t *testing.T) {
	path := testutil.WriteTempCSV(t, "sample.csv", sampleCSV)
	svc := NewService()
	fp, err := svc.Generate(path)
	require.NoError(t, err)

	report := svc.BuildReport(fp)
	assert.Contains(t, report, "=== 数据集指纹报告 ===")
	assert.Contains(t, report, "文件名: sample.csv")
	assert.Contains(t, report, fp.FingerprintInfo.FileHashSHA256)
	assert.Contains(t, report, "行数: 3, 列数: 3")
	assert.Contains(t, report, "age (numeric)")
	assert.Contains(t, report, "city (categorical)")
}
