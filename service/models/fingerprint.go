/*
 * @module service/models/fingerprint
 * @description 数据集指纹记录定义，包括文件信息、哈希信息、列画像和模式摘要
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow 指纹记录由指纹服务一次性生成，生成后不再修改
 * @rules 相同输入必须产生相同指纹记录（生成时间戳除外）；无法计算的聚合值为null而非NaN
 * @dependencies 无
 * @refs service/fingerprint
 */

package models

// FingerprintGeneratorVersion 指纹生成器版本号
const FingerprintGeneratorVersion = "1.0.0"

// FileInfo 文件元数据信息
type FileInfo struct {
	Filename         string  `json:"filename"`
	FilePath         string  `json:"file_path"`
	FileSizeBytes    int64   `json:"file_size_bytes"`
	FileSizeMB       float64 `json:"file_size_mb"`
	FileExtension    string  `json:"file_extension"`
	CreationTime     string  `json:"creation_time"`
	ModificationTime string  `json:"modification_time"`
}

// FingerprintInfo 指纹哈希信息
type FingerprintInfo struct {
	GeneratedAt       string `json:"generated_at"`
	GeneratorVersion  string `json:"generator_version"`
	FileHashSHA256    string `json:"file_hash_sha256"`
	ContentHashSHA256 string `json:"content_hash_sha256"`
}

// ColumnProfile 单列画像
// 类型特定的聚合字段仅在对应语义类型下填充，空列的聚合值为null
type ColumnProfile struct {
	Dtype            string  `json:"dtype"`
	NonNullCount     int     `json:"non_null_count"`
	NullCount        int     `json:"null_count"`
	NullPercentage   float64 `json:"null_percentage"`
	UniqueCount      int     `json:"unique_count"`
	UniquePercentage float64 `json:"unique_percentage"`

	// 数值列聚合
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Q25    *float64 `json:"q25,omitempty"`
	Q75    *float64 `json:"q75,omitempty"`

	// 分类/文本列聚合
	TopValues map[string]int `json:"top_values,omitempty"`
	AvgLength *float64       `json:"avg_length,omitempty"`
	MaxLength *int           `json:"max_length,omitempty"`

	// 时间列聚合
	MinDate       *string `json:"min_date,omitempty"`
	MaxDate       *string `json:"max_date,omitempty"`
	DateRangeDays *int    `json:"date_range_days,omitempty"`

	// 布尔列聚合
	TrueCount      *int     `json:"true_count,omitempty"`
	FalseCount     *int     `json:"false_count,omitempty"`
	TruePercentage *float64 `json:"true_percentage,omitempty"`
}

// SummaryStats 数据集级统计摘要
type SummaryStats struct {
	TotalRows             int     `json:"total_rows"`
	TotalColumns          int     `json:"total_columns"`
	MemoryUsageMB         float64 `json:"memory_usage_mb"`
	TotalCells            int     `json:"total_cells"`
	TotalNullCells        int     `json:"total_null_cells"`
	OverallNullPercentage float64 `json:"overall_null_percentage"`
}

// DataQuality 数据质量指标
type DataQuality struct {
	ColumnsWithNulls    int     `json:"columns_with_nulls"`
	ColumnsAllUnique    int     `json:"columns_all_unique"`
	ColumnsSingleValue  int     `json:"columns_single_value"`
	DuplicateRows       int     `json:"duplicate_rows"`
	DuplicatePercentage float64 `json:"duplicate_percentage"`
}

// SchemaInfo 数据集模式信息
type SchemaInfo struct {
	Columns              map[string]*ColumnProfile `json:"columns"`
	SummaryStats         SummaryStats              `json:"summary_stats"`
	DataQuality          DataQuality               `json:"data_quality"`
	DataTypeDistribution map[string]int            `json:"data_type_distribution"`
}

// Fingerprint 数据集指纹完整记录
type Fingerprint struct {
	FileInfo        FileInfo        `json:"file_info"`
	FingerprintInfo FingerprintInfo `json:"fingerprint_info"`
	Schema          SchemaInfo      `json:"schema"`
}
