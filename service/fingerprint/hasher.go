/*
 * @module service/fingerprint/hasher
 * @description 哈希计算模块，提供文件字节级哈希与内容级规范化哈希
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/fingerprint_req.md
 * @stateFlow 文件哈希分块流式读取；内容哈希先规范化（列排序+行排序）再哈希
 * @rules 内容哈希对行顺序和列顺序不敏感，对任何单元格值变化敏感
 * @dependencies crypto/sha256, encoding/hex
 * @refs service/fingerprint/service
 */

package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"strings"

	"aigov-service/service/models"
)

// hashChunkSize 文件哈希读取块大小
const hashChunkSize = 4096

// FileSHA256 计算文件内容的SHA-256哈希（十六进制小写）
func FileSHA256(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", models.NewFormatError("打开文件失败: %v", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", models.NewFormatError("读取文件失败: %v", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ContentSHA256 计算数据集的内容哈希
// 规范化流程：列按列名字典序排序 -> 每行单元格转规范化字符串 ->
// 行按字典序排序 -> 制表符连接序列化 -> SHA-256
// 同一逻辑内容在不同行列顺序下哈希一致
func ContentSHA256(ds *models.Dataset) string {
	colIdx := make([]int, len(ds.Columns))
	for i := range colIdx {
		colIdx[i] = i
	}
	sort.Slice(colIdx, func(i, j int) bool {
		return ds.Columns[colIdx[i]].Name < ds.Columns[colIdx[j]].Name
	})

	rows := ds.RowCount()
	serialized := make([]string, 0, rows)
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		sb.Reset()
		for k, ci := range colIdx {
			if k > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(ds.Columns[ci].Cells[r].CanonicalString())
		}
		serialized = append(serialized, sb.String())
	}
	sort.Strings(serialized)

	h := sha256.New()
	for _, ci := range colIdx {
		h.Write([]byte(ds.Columns[ci].Name))
		h.Write([]byte{'\t'})
	}
	h.Write([]byte{'\n'})
	for _, row := range serialized {
		h.Write([]byte(row))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
