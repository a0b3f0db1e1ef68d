/*
 * @module service/bias/vocabulary
 * @description 自动检测词表模块，维护受保护属性与目标列的关键字词表并支持外部配置
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/bias_req.md
 * @stateFlow 启动时加载默认词表 -> 存在配置文件时覆盖 -> 检测器按词表匹配列名
 * @rules 词表匹配不区分大小写；配置文件缺失字段时保留默认值
 * @dependencies encoding/json, os
 * @refs service/bias/detector
 */

package bias

import (
	"encoding/json"
	"os"

	"aigov-service/service/models"
)

// Vocabulary 自动检测使用的关键字词表
type Vocabulary struct {
	// ProtectedKeywords 列名包含任一关键字时视为候选受保护属性
	ProtectedKeywords []string `json:"protected_keywords"`
	// ProtectedValues 分类列取值命中任一关键字时视为候选受保护属性
	ProtectedValues []string `json:"protected_values"`
	// TargetKeywords 列名包含任一关键字时视为候选目标列
	TargetKeywords []string `json:"target_keywords"`
}

// DefaultVocabulary 返回内置默认词表
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		ProtectedKeywords: []string{
			"gender", "sex", "male", "female", "man", "woman",
			"race", "ethnicity", "ethnic", "black", "white", "asian", "hispanic", "latino",
			"age", "birth", "year", "old", "young",
			"religion", "religious", "muslim", "christian", "jewish", "hindu", "buddhist",
			"disability", "disabled", "handicap",
			"income", "salary", "wage", "wealth", "poor", "rich",
			"education", "degree", "school", "university", "college",
			"marital", "married", "single", "divorced",
			"nationality", "country", "origin", "citizen",
			"sexual", "orientation", "lgbt", "gay", "lesbian", "bisexual",
		},
		ProtectedValues: []string{
			"male", "female", "m", "f", "man", "woman",
			"white", "black", "asian", "hispanic", "latino", "african", "american",
			"christian", "muslim", "jewish", "hindu", "buddhist",
			"yes", "no", "true", "false", "1", "0",
		},
		TargetKeywords: []string{
			"target", "label", "outcome", "result", "prediction", "class",
			"success", "failure", "approved", "denied", "accepted", "rejected",
			"default", "fraud", "churn", "conversion", "click", "purchase",
			"income", "salary", "price", "cost", "value", "score",
			"rating", "review", "satisfaction", "quality",
		},
	}
}

// LoadVocabulary 从JSON配置文件加载词表
// path为空时直接返回默认词表；文件中缺失的字段保留默认值
func LoadVocabulary(path string) (*Vocabulary, error) {
	vocab := DefaultVocabulary()
	if path == "" {
		return vocab, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewFormatError("读取词表配置失败: %v", err)
	}

	var override Vocabulary
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, models.NewFormatError("解析词表配置失败: %v", err)
	}

	if len(override.ProtectedKeywords) > 0 {
		vocab.ProtectedKeywords = override.ProtectedKeywords
	}
	if len(override.ProtectedValues) > 0 {
		vocab.ProtectedValues = override.ProtectedValues
	}
	if len(override.TargetKeywords) > 0 {
		vocab.TargetKeywords = override.TargetKeywords
	}
	return vocab, nil
}
