/*
 * @module service/badge/svg
 * @description SVG徽章渲染模块，将徽章数据渲染为可缩放矢量图形
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/badge_req.md
 * @stateFlow 徽章数据 -> 等级模板取色 -> 模板渲染 -> SVG文本
 * @rules 类别明细最多渲染前三个类别；时间戳仅取日期部分
 * @dependencies text/template
 * @refs api/controllers/badge_controller
 */

package badge

import (
	"strings"
	"text/template"

	"aigov-service/service/models"
)

const svgBadgeTemplate = `<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">
    <rect width="400" height="300" fill="white" stroke="{{.BorderColor}}" stroke-width="8"/>
    <rect x="8" y="8" width="384" height="72" fill="{{.Color}}"/>
    <text x="200" y="35" text-anchor="middle" fill="{{.TextColor}}"
          font-family="Arial, sans-serif" font-size="24" font-weight="bold">ETHICAL AI BADGE</text>
    <text x="200" y="60" text-anchor="middle" fill="{{.TextColor}}"
          font-family="Arial, sans-serif" font-size="16">{{.Label}}</text>
    <circle cx="200" cy="140" r="40" fill="{{.Color}}"
            stroke="{{.BorderColor}}" stroke-width="3"/>
    <text x="200" y="155" text-anchor="middle" fill="{{.TextColor}}"
          font-family="Arial, sans-serif" font-size="48" font-weight="bold">{{printf "%.0f" .Score}}</text>
    <text x="200" y="210" text-anchor="middle" fill="black"
          font-family="Arial, sans-serif" font-size="16">Model: {{.ModelName}}</text>
{{- range .Categories}}
    <text x="20" y="{{.Y}}" fill="black"
          font-family="Arial, sans-serif" font-size="12">{{.Name}}: {{printf "%.0f" .Score}}</text>
{{- end}}
    <text x="20" y="285" fill="gray"
          font-family="Arial, sans-serif" font-size="12">Generated: {{.Date}}</text>
</svg>
`

var svgTemplate = template.Must(template.New("badge").Parse(svgBadgeTemplate))

// svgCategoryLimit SVG中类别明细的渲染数量上限
const svgCategoryLimit = 3

type svgCategory struct {
	Name  string
	Score float64
	Y     int
}

type svgData struct {
	Color       string
	TextColor   string
	BorderColor string
	Label       string
	Score       float64
	ModelName   string
	Categories  []svgCategory
	Date        string
}

// CreateSVGBadge 将徽章数据渲染为SVG文本
func CreateSVGBadge(data *models.BadgeData) (string, error) {
	categories := make([]svgCategory, 0, svgCategoryLimit)
	y := 240
	for _, key := range models.BadgeCategoryKeys {
		if len(categories) >= svgCategoryLimit {
			break
		}
		score, ok := data.CategoryScores[key]
		if !ok {
			continue
		}
		categories = append(categories, svgCategory{
			Name:  models.BadgeCategoryNames[key],
			Score: score,
			Y:     y,
		})
		y += 15
	}

	date := data.GeneratedAt
	if len(date) >= 10 {
		date = date[:10]
	}

	var sb strings.Builder
	err := svgTemplate.Execute(&sb, svgData{
		Color:       data.BadgeConfig.Color,
		TextColor:   data.BadgeConfig.TextColor,
		BorderColor: data.BadgeConfig.BorderColor,
		Label:       data.BadgeConfig.Label,
		Score:       data.OverallScore,
		ModelName:   data.ModelName,
		Categories:  categories,
		Date:        date,
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
