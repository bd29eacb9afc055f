package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taoyao-code/meshmsg/internal/mesh/message"
)

// NewRegistry 创建自定义 Prometheus Registry，并注册常用采集器
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler 返回 Prometheus 指标 HTTP 处理器
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// AppMetrics 自定义业务指标
type AppMetrics struct {
	AssembledTotal     *prometheus.CounterVec // labels: opcode
	AssembledBytes     prometheus.Counter     // 参数字节累计
	AssembleErrorTotal *prometheus.CounterVec // labels: reason=invalid_argument|unsupported_opcode|serialization|other
	OutboundTotal      *prometheus.CounterVec // labels: result=ok|error
	RateLimitedTotal   prometheus.Counter
}

// NewAppMetrics 注册并返回业务指标
func NewAppMetrics(reg *prometheus.Registry) *AppMetrics {
	m := &AppMetrics{
		AssembledTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mesh_message_assembled_total",
			Help: "Mesh access messages assembled by opcode.",
		}, []string{"opcode"}),
		AssembledBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mesh_message_parameter_bytes_total",
			Help: "Total parameter bytes produced by the assembler.",
		}),
		AssembleErrorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mesh_message_assemble_errors_total",
			Help: "Rejected assembly requests by reason.",
		}, []string{"reason"}),
		OutboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mesh_outbound_enqueue_total",
			Help: "Assembled messages handed to the outbound queue.",
		}, []string{"result"}),
		RateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "API requests rejected by the rate limiter.",
		}),
	}
	reg.MustRegister(m.AssembledTotal, m.AssembledBytes, m.AssembleErrorTotal, m.OutboundTotal, m.RateLimitedTotal)
	return m
}

// Observer 组装事件计数
func (m *AppMetrics) Observer() message.Observer {
	return message.ObserverFunc(func(e message.Event) {
		m.AssembledTotal.WithLabelValues(e.Opcode.String()).Inc()
		m.AssembledBytes.Add(float64(len(e.Parameters)))
	})
}

// Observers 多个观察者扇出
func Observers(obs ...message.Observer) message.Observer {
	return message.ObserverFunc(func(e message.Event) {
		for _, o := range obs {
			if o != nil {
				o.OnAssembled(e)
			}
		}
	})
}
