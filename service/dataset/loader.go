/*
 * @module service/dataset/loader
 * @description 数据集加载模块，负责将CSV/JSON文件解析为内存数据集并推断列语义类型
 * @architecture 分层架构 - 数据接入层
 * @documentReference ai_docs/fingerprint_req.md
 * @stateFlow 读取文件 -> 编码检测与转换 -> 解析为列 -> 类型推断 -> 只读数据集
 * @rules 不支持的扩展名或无法解析的内容返回FormatError；加载后的数据集不可变
 * @dependencies encoding/csv, encoding/json, golang.org/x/text
 * @refs service/fingerprint, service/bias
 */

package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"aigov-service/service/models"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// SupportedExtensions 支持的数据集文件扩展名
var SupportedExtensions = map[string]bool{
	".csv":  true,
	".json": true,
}

// Load 从文件加载数据集
func Load(filePath string) (*models.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if !SupportedExtensions[ext] {
		return nil, models.NewFormatError("不支持的文件格式: %s", ext)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, models.NewFormatError("读取数据集文件失败: %v", err)
	}

	switch ext {
	case ".csv":
		return loadCSV(data)
	case ".json":
		return loadJSON(data)
	}
	return nil, models.NewFormatError("不支持的文件格式: %s", ext)
}

// loadCSV 解析CSV内容
// 非UTF-8内容按GBK解码后再解析
func loadCSV(data []byte) (*models.Dataset, error) {
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
		if err != nil {
			return nil, models.NewFormatError("文件编码无法识别: %v", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	// 允许行字段数不一致，短行缺失的字段补空值
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, models.NewFormatError("CSV文件为空")
	}
	if err != nil {
		return nil, models.NewFormatError("解析CSV表头失败: %v", err)
	}

	raw := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.NewFormatError("解析CSV数据行失败: %v", err)
		}
		for i := range header {
			if i < len(record) {
				raw[i] = append(raw[i], record[i])
			} else {
				raw[i] = append(raw[i], "")
			}
		}
	}

	ds := &models.Dataset{Columns: make([]models.DatasetColumn, 0, len(header))}
	for i, name := range header {
		ds.Columns = append(ds.Columns, inferColumn(name, raw[i]))
	}
	return ds, nil
}

// loadJSON 解析JSON内容（对象数组，每个对象为一行）
// 列顺序取所有键的字典序，保证加载结果确定
func loadJSON(data []byte) (*models.Dataset, error) {
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, models.NewFormatError("解析JSON数据失败: 期望对象数组: %v", err)
	}

	keySet := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ds := &models.Dataset{Columns: make([]models.DatasetColumn, 0, len(keys))}
	for _, key := range keys {
		raw := make([]string, 0, len(rows))
		for _, row := range rows {
			raw = append(raw, jsonValueString(row[key]))
		}
		ds.Columns = append(ds.Columns, inferColumn(key, raw))
	}
	return ds, nil
}

// jsonValueString 将JSON值转为原始字符串表示，交由类型推断统一处理
func jsonValueString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
