/*
 * @module service/dataset/loader_test
 * @description 数据集加载与类型推断单元测试
 * @architecture 测试层
 * @documentReference ai_docs/fingerprint_req.md
 */

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"aigov-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "data.xlsx", []byte("whatever"))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, models.IsFormatError(err))
}

func TestLoad_CSVTypeInference(t *testing.T) {
	csv := "name,age,active,joined,score\n" +
		"alice,30,true,2023-01-01,90.5\n" +
		"bob,25,false,2023-02-01,75.0\n" +
		"carol,NA,true,2023-03-01,88.25\n"
	path := writeTempFile(t, "data.csv", []byte(csv))

	ds, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, ds.ColumnCount())
	assert.Equal(t, 3, ds.RowCount())

	name, _ := ds.Column("name")
	assert.Equal(t, models.ColumnTypeCategorical, name.Type)

	age, _ := ds.Column("age")
	assert.Equal(t, models.ColumnTypeNumeric, age.Type)
	assert.True(t, age.Cells[2].IsNull())

	active, _ := ds.Column("active")
	assert.Equal(t, models.ColumnTypeBoolean, active.Type)
	assert.True(t, active.Cells[0].Bool)
	assert.False(t, active.Cells[1].Bool)

	joined, _ := ds.Column("joined")
	assert.Equal(t, models.ColumnTypeDatetime, joined.Type)

	score, _ := ds.Column("score")
	assert.Equal(t, models.ColumnTypeNumeric, score.Type)
	assert.InDelta(t, 88.25, score.Cells[2].Num, 1e-9)
}

func TestLoad_CSVNullMarkers(t *testing.T) {
	csv := "v\n1\nnull\nNaN\nNone\n\n2\n"
	path := writeTempFile(t, "data.csv", []byte(csv))

	ds, err := Load(path)
	require.NoError(t, err)

	col, _ := ds.Column("v")
	assert.Equal(t, models.ColumnTypeNumeric, col.Type)
	nulls := 0
	for _, cell := range col.Cells {
		if cell.IsNull() {
			nulls++
		}
	}
	assert.Equal(t, 4, nulls)
}

func TestLoad_CSVShortRecordPadded(t *testing.T) {
	// 行字段数不足时补空值
	csv := "a,b\n1,2\n3\n"
	path := writeTempFile(t, "data.csv", []byte(csv))

	ds, err := Load(path)
	require.NoError(t, err)
	b, _ := ds.Column("b")
	assert.True(t, b.Cells[1].IsNull())
}

func TestLoad_CSVEmptyFile(t *testing.T) {
	path := writeTempFile(t, "data.csv", []byte(""))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, models.IsFormatError(err))
}

func TestLoad_CSVGBKEncoding(t *testing.T) {
	utf8CSV := "城市,人口\n北京,2154\n上海,2424\n"
	gbkBytes, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(utf8CSV))
	require.NoError(t, err)
	path := writeTempFile(t, "data.csv", gbkBytes)

	ds, err := Load(path)
	require.NoError(t, err)

	city, ok := ds.Column("城市")
	require.True(t, ok)
	assert.Equal(t, "北京", city.Cells[0].Str)
	assert.Equal(t, "上海", city.Cells[1].Str)
}

func TestLoad_JSONObjectArray(t *testing.T) {
	content := `[
		{"name": "alice", "age": 30, "vip": true},
		{"name": "bob", "age": 25},
		{"name": "carol", "age": null, "vip": false}
	]`
	path := writeTempFile(t, "data.json", []byte(content))

	ds, err := Load(path)
	require.NoError(t, err)
	// 列按键名字典序排列
	assert.Equal(t, []string{"age", "name", "vip"}, ds.ColumnNames())
	assert.Equal(t, 3, ds.RowCount())

	age, _ := ds.Column("age")
	assert.Equal(t, models.ColumnTypeNumeric, age.Type)
	assert.True(t, age.Cells[2].IsNull())

	vip, _ := ds.Column("vip")
	assert.Equal(t, models.ColumnTypeBoolean, vip.Type)
	assert.True(t, vip.Cells[1].IsNull())
}

func TestLoad_JSONInvalid(t *testing.T) {
	path := writeTempFile(t, "data.json", []byte(`{"not": "an array"}`))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, models.IsFormatError(err))
}

func TestInferColumn_AllNullUnknown(t *testing.T) {
	col := inferColumn("empty", []string{"", "NA", "null"})
	assert.Equal(t, models.ColumnTypeUnknown, col.Type)
	for _, cell := range col.Cells {
		assert.True(t, cell.IsNull())
	}
}

func TestInferColumn_MixedFallsBackToCategorical(t *testing.T) {
	col := inferColumn("mixed", []string{"1", "two", "3"})
	assert.Equal(t, models.ColumnTypeCategorical, col.Type)
}
