/*
 * @module service/fingerprint/service
 * @description 指纹服务，组装文件信息、哈希信息和模式信息生成完整指纹记录
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/fingerprint_req.md
 * @stateFlow 加载数据集 -> 计算文件哈希 -> 计算内容哈希 -> 模式画像 -> 指纹记录
 * @rules 指纹生成后不可修改；相同文件内容产生相同哈希
 * @dependencies aigov-service/service/dataset, aigov-service/service/models
 * @refs api/controllers/fingerprint_controller
 */

package fingerprint

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"aigov-service/service/dataset"
	"aigov-service/service/models"
)

// Service 指纹服务
type Service struct{}

// NewService 创建指纹服务
func NewService() *Service {
	return &Service{}
}

// Generate 从文件生成数据集指纹
func (s *Service) Generate(filePath string) (*models.Fingerprint, error) {
	ds, err := dataset.Load(filePath)
	if err != nil {
		return nil, err
	}
	return s.GenerateForDataset(filePath, ds)
}

// GenerateForDataset 为已加载的数据集生成指纹
func (s *Service) GenerateForDataset(filePath string, ds *models.Dataset) (*models.Fingerprint, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, models.NewFormatError("读取文件信息失败: %v", err)
	}

	fileHash, err := FileSHA256(filePath)
	if err != nil {
		return nil, err
	}

	modTime := stat.ModTime().UTC().Format(time.RFC3339)
	fp := &models.Fingerprint{
		FileInfo: models.FileInfo{
			Filename:         filepath.Base(filePath),
			FilePath:         filePath,
			FileSizeBytes:    stat.Size(),
			FileSizeMB:       float64(stat.Size()) / 1024 / 1024,
			FileExtension:    strings.ToLower(filepath.Ext(filePath)),
			CreationTime:     modTime,
			ModificationTime: modTime,
		},
		FingerprintInfo: models.FingerprintInfo{
			GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
			GeneratorVersion:  models.FingerprintGeneratorVersion,
			FileHashSHA256:    fileHash,
			ContentHashSHA256: ContentSHA256(ds),
		},
		Schema: AnalyzeSchema(ds),
	}
	return fp, nil
}

// BuildReport 生成指纹的可读文本报告
func (s *Service) BuildReport(fp *models.Fingerprint) string {
	var sb strings.Builder
	sb.WriteString("=== 数据集指纹报告 ===\n\n")
	sb.WriteString("【文件信息】\n")
	sb.WriteString(fmt.Sprintf("  文件名: %s\n", fp.FileInfo.Filename))
	sb.WriteString(fmt.Sprintf("  文件大小: %.2f MB (%d 字节)\n", fp.FileInfo.FileSizeMB, fp.FileInfo.FileSizeBytes))
	sb.WriteString(fmt.Sprintf("  修改时间: %s\n\n", fp.FileInfo.ModificationTime))

	sb.WriteString("【指纹信息】\n")
	sb.WriteString(fmt.Sprintf("  生成时间: %s\n", fp.FingerprintInfo.GeneratedAt))
	sb.WriteString(fmt.Sprintf("  生成器版本: %s\n", fp.FingerprintInfo.GeneratorVersion))
	sb.WriteString(fmt.Sprintf("  文件哈希(SHA-256): %s\n", fp.FingerprintInfo.FileHashSHA256))
	sb.WriteString(fmt.Sprintf("  内容哈希(SHA-256): %s\n\n", fp.FingerprintInfo.ContentHashSHA256))

	sb.WriteString("【数据概况】\n")
	ss := fp.Schema.SummaryStats
	sb.WriteString(fmt.Sprintf("  行数: %d, 列数: %d\n", ss.TotalRows, ss.TotalColumns))
	sb.WriteString(fmt.Sprintf("  总单元格: %d, 空值单元格: %d (%.2f%%)\n",
		ss.TotalCells, ss.TotalNullCells, ss.OverallNullPercentage))
	dq := fp.Schema.DataQuality
	sb.WriteString(fmt.Sprintf("  重复行: %d (%.2f%%)\n\n", dq.DuplicateRows, dq.DuplicatePercentage))

	sb.WriteString("【列画像】\n")
	names := make([]string, 0, len(fp.Schema.Columns))
	for name := range fp.Schema.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := fp.Schema.Columns[name]
		sb.WriteString(fmt.Sprintf("  %s (%s): 非空 %d, 空值 %.1f%%, 唯一值 %d\n",
			name, p.Dtype, p.NonNullCount, p.NullPercentage, p.UniqueCount))
	}
	return sb.String()
}
