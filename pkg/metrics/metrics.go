package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics 业务与 HTTP 指标集合，通过 /metrics 暴露给 Prometheus
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	MessVotes         *prometheus.CounterVec
	MessVotesRejected *prometheus.CounterVec
	ComplaintsFiled   *prometheus.CounterVec
}

// New 创建并注册全部指标
// 每个实例独立 Registry，测试中可重复创建
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "http_requests_total",
			Help:      "HTTP 请求总数",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hostel",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MessVotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "mess_votes_total",
			Help:      "成功写入的报餐次数",
		}, []string{"hostel", "meal", "choice"}),
		MessVotesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "mess_votes_rejected_total",
			Help:      "因超过截止时间被拒绝的报餐次数",
		}, []string{"meal"}),
		ComplaintsFiled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostel",
			Name:      "complaints_filed_total",
			Help:      "提交的报修数量",
		}, []string{"hostel", "category"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPLatency,
		m.MessVotes,
		m.MessVotesRejected,
		m.ComplaintsFiled,
	)
	return m
}
