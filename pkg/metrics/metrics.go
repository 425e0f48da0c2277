// Package metrics expone las métricas Prometheus de la API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics métricas HTTP y de negocio.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SalesTotal        *prometheus.CounterVec
	SaleItemsTotal    prometheus.Counter
	SalesRevenueTotal prometheus.Counter
	SalesDeletedTotal prometheus.Counter
}

// NewMetrics crea y registra todas las métricas en registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meustock_http_requests_total",
				Help: "Total de requisições HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meustock_http_request_duration_seconds",
				Help:    "Duração das requisições HTTP em segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		SalesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meustock_sales_total",
				Help: "Vendas registradas por forma de pagamento",
			},
			[]string{"payment_method"},
		),
		SaleItemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meustock_sale_items_total",
			Help: "Itens vendidos (linhas de venda)",
		}),
		SalesRevenueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meustock_sales_revenue_total",
			Help: "Soma do total das vendas registradas",
		}),
		SalesDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "meustock_sales_deleted_total",
			Help: "Vendas excluídas",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SalesTotal,
		m.SaleItemsTotal,
		m.SalesRevenueTotal,
		m.SalesDeletedTotal,
	)
	return m
}

// SaleCreated registra una venta confirmada.
func (m *Metrics) SaleCreated(paymentMethod string, items int, total decimal.Decimal) {
	m.SalesTotal.WithLabelValues(paymentMethod).Inc()
	m.SaleItemsTotal.Add(float64(items))
	f, _ := total.Float64()
	m.SalesRevenueTotal.Add(f)
}

// SaleDeleted registra una venta eliminada.
func (m *Metrics) SaleDeleted() {
	m.SalesDeletedTotal.Inc()
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// Handler expone el registry en formato texto de Prometheus.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
