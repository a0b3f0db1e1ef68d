/*
 * @module service/metrics/metrics
 * @description 服务指标模块，记录各类分析操作的次数与耗时，经/metrics端点暴露
 * @architecture 工具层 - 可观测性
 * @documentReference ai_docs/monitoring_req.md
 * @stateFlow 分析操作完成后上报计数与耗时 -> Prometheus拉取
 * @rules 指标标签仅使用低基数的操作类型与结果状态
 * @dependencies github.com/prometheus/client_golang/prometheus
 * @refs api/controllers
 */

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aigov",
		Name:      "analysis_total",
		Help:      "分析操作总次数，按操作类型与结果状态统计",
	}, []string{"kind", "status"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aigov",
		Name:      "analysis_duration_seconds",
		Help:      "分析操作耗时分布（秒）",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
)

// ObserveAnalysis 上报一次分析操作的结果与耗时
func ObserveAnalysis(kind string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	analysisTotal.WithLabelValues(kind, status).Inc()
	analysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
