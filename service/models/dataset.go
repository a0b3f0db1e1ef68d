/*
 * @module service/models/dataset
 * @description 数据集内存模型定义，包括列语义类型、单元格标签联合类型和数据集结构
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 数据集加载后只读，所有分析组件不修改数据集
 * @rules 单元格类型必须穷举处理，规范化字符串表示在所有平台上保持一致
 * @dependencies strconv, time
 * @refs service/dataset, service/fingerprint, service/bias
 */

package models

import (
	"strconv"
	"time"
)

// ColumnType 列语义类型
type ColumnType string

const (
	ColumnTypeNumeric     ColumnType = "numeric"
	ColumnTypeCategorical ColumnType = "categorical"
	ColumnTypeDatetime    ColumnType = "datetime"
	ColumnTypeBoolean     ColumnType = "boolean"
	ColumnTypeUnknown     ColumnType = "unknown"
)

// CellKind 单元格值的标签类型
type CellKind int

const (
	CellNull CellKind = iota
	CellNumeric
	CellString
	CellBool
	CellTime
)

// Cell 单元格值，标签联合类型
// 同一时间只有与Kind对应的字段有效
type Cell struct {
	Kind CellKind
	Num  float64
	Str  string
	Bool bool
	Time time.Time
}

// NullCell 创建空值单元格
func NullCell() Cell {
	return Cell{Kind: CellNull}
}

// NumericCell 创建数值单元格
func NumericCell(v float64) Cell {
	return Cell{Kind: CellNumeric, Num: v}
}

// StringCell 创建字符串单元格
func StringCell(v string) Cell {
	return Cell{Kind: CellString, Str: v}
}

// BoolCell 创建布尔单元格
func BoolCell(v bool) Cell {
	return Cell{Kind: CellBool, Bool: v}
}

// TimeCell 创建时间单元格
func TimeCell(v time.Time) Cell {
	return Cell{Kind: CellTime, Time: v}
}

// IsNull 判断单元格是否为空值
func (c Cell) IsNull() bool {
	return c.Kind == CellNull
}

// CanonicalString 返回单元格的规范化字符串表示
// 该表示用于内容哈希、行排序和去重，必须跨平台稳定：
// 空值为空字符串，数值使用最短往返十进制表示，时间统一为UTC RFC3339
func (c Cell) CanonicalString() string {
	switch c.Kind {
	case CellNull:
		return ""
	case CellNumeric:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case CellString:
		return c.Str
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellTime:
		return c.Time.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// DatasetColumn 数据集的一列
type DatasetColumn struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// Dataset 内存中的表格数据集，按列存储
// 列名唯一，列顺序保留加载顺序（内容哈希与列顺序无关）
type Dataset struct {
	Columns []DatasetColumn
}

// RowCount 数据集行数
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

// ColumnCount 数据集列数
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// Column 按名称查找列
func (d *Dataset) Column(name string) (*DatasetColumn, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// ColumnNames 返回所有列名（按加载顺序）
func (d *Dataset) ColumnNames() []string {
	names := make([]string, 0, len(d.Columns))
	for i := range d.Columns {
		names = append(names, d.Columns[i].Name)
	}
	return names
}

// Row 返回第i行的所有单元格（按列顺序）
func (d *Dataset) Row(i int) []Cell {
	row := make([]Cell, 0, len(d.Columns))
	for j := range d.Columns {
		row = append(row, d.Columns[j].Cells[i])
	}
	return row
}
