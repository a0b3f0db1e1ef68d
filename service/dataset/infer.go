/*
 * @module service/dataset/infer
 * @description 列语义类型推断模块，将原始字符串列推断为数值/布尔/时间/分类列
 * @architecture 分层架构 - 数据接入层
 * @documentReference ai_docs/fingerprint_req.md
 * @stateFlow 原始字符串 -> 空值归一化 -> 候选类型逐一尝试 -> 生成类型化单元格
 * @rules 推断顺序固定：布尔 -> 数值 -> 时间 -> 分类；全空列为unknown类型
 * @dependencies github.com/spf13/cast, time
 * @refs service/dataset/loader
 */

package dataset

import (
	"strings"
	"time"

	"aigov-service/service/models"

	"github.com/spf13/cast"
)

// nullMarkers 视为空值的原始字符串
var nullMarkers = map[string]bool{
	"":     true,
	"null": true,
	"NULL": true,
	"Null": true,
	"nan":  true,
	"NaN":  true,
	"None": true,
	"NA":   true,
	"N/A":  true,
}

// datetimeLayouts 时间解析候选格式
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// inferColumn 推断单列的语义类型并生成类型化单元格
func inferColumn(name string, raw []string) models.DatasetColumn {
	nonNull := make([]string, 0, len(raw))
	for _, v := range raw {
		if !nullMarkers[v] {
			nonNull = append(nonNull, v)
		}
	}

	if len(nonNull) == 0 {
		cells := make([]models.Cell, len(raw))
		for i := range cells {
			cells[i] = models.NullCell()
		}
		return models.DatasetColumn{Name: name, Type: models.ColumnTypeUnknown, Cells: cells}
	}

	switch {
	case allBool(nonNull):
		return buildColumn(name, models.ColumnTypeBoolean, raw, func(v string) models.Cell {
			return models.BoolCell(strings.EqualFold(v, "true"))
		})
	case allNumeric(nonNull):
		return buildColumn(name, models.ColumnTypeNumeric, raw, func(v string) models.Cell {
			return models.NumericCell(cast.ToFloat64(v))
		})
	case allDatetime(nonNull):
		return buildColumn(name, models.ColumnTypeDatetime, raw, func(v string) models.Cell {
			t, _ := parseDatetime(v)
			return models.TimeCell(t)
		})
	default:
		return buildColumn(name, models.ColumnTypeCategorical, raw, func(v string) models.Cell {
			return models.StringCell(v)
		})
	}
}

// buildColumn 按转换函数生成列，空值标记统一转为空单元格
func buildColumn(name string, colType models.ColumnType, raw []string, convert func(string) models.Cell) models.DatasetColumn {
	cells := make([]models.Cell, 0, len(raw))
	for _, v := range raw {
		if nullMarkers[v] {
			cells = append(cells, models.NullCell())
		} else {
			cells = append(cells, convert(v))
		}
	}
	return models.DatasetColumn{Name: name, Type: colType, Cells: cells}
}

func allBool(values []string) bool {
	for _, v := range values {
		if !strings.EqualFold(v, "true") && !strings.EqualFold(v, "false") {
			return false
		}
	}
	return true
}

func allNumeric(values []string) bool {
	for _, v := range values {
		if _, err := cast.ToFloat64E(strings.TrimSpace(v)); err != nil {
			return false
		}
	}
	return true
}

func allDatetime(values []string) bool {
	for _, v := range values {
		if _, ok := parseDatetime(v); !ok {
			return false
		}
	}
	return true
}

func parseDatetime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
