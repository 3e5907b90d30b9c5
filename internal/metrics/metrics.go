// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやアーカイブワーカーから利用する。
type MetricsCollector interface {
	RecordClockIn()
	RecordClockOut()
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordArchiveRun(kind string)
	RecordSummariesWritten(count int64)
	RecordShiftsPurged(count int64)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	clockIns         prometheus.Counter
	clockOuts        prometheus.Counter
	httpStatus       *prometheus.CounterVec
	requestLatency   prometheus.Histogram
	archiveRuns      *prometheus.CounterVec
	summariesWritten prometheus.Counter
	shiftsPurged     prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		clockIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kintai_clock_in_total",
			Help: "出勤打刻の合計数",
		}),
		clockOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kintai_clock_out_total",
			Help: "退勤打刻の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kintai_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kintai_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		archiveRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kintai_archive_runs_total",
			Help: "アーカイブジョブ実行の合計数（週次・月次別）",
		}, []string{"kind"}),
		summariesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kintai_summaries_written_total",
			Help: "書き込まれた集計サマリーの合計数",
		}),
		shiftsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kintai_shifts_purged_total",
			Help: "月次アーカイブで削除された勤務記録の合計数",
		}),
	}

	reg.MustRegister(
		c.clockIns,
		c.clockOuts,
		c.httpStatus,
		c.requestLatency,
		c.archiveRuns,
		c.summariesWritten,
		c.shiftsPurged,
	)

	return c
}

// RecordClockIn は出勤打刻を記録する。
func (c *Collector) RecordClockIn() {
	c.clockIns.Inc()
}

// RecordClockOut は退勤打刻を記録する。
func (c *Collector) RecordClockOut() {
	c.clockOuts.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordArchiveRun はアーカイブジョブの実行を記録する。
func (c *Collector) RecordArchiveRun(kind string) {
	c.archiveRuns.WithLabelValues(kind).Inc()
}

// RecordSummariesWritten は書き込まれたサマリー数を記録する。
func (c *Collector) RecordSummariesWritten(count int64) {
	c.summariesWritten.Add(float64(count))
}

// RecordShiftsPurged は削除された勤務記録数を記録する。
func (c *Collector) RecordShiftsPurged(count int64) {
	c.shiftsPurged.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
