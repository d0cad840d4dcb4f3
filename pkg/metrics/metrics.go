// Package metrics expone métricas Prometheus de HTTP y de negocio (pedidos, envíos, nómina).
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartstock"

var (
	// Request metrics
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total de peticiones a la API",
		},
		[]string{"method", "path"},
	)
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total de respuestas con status >= 400",
		},
		[]string{"method", "path", "status"},
	)

	// Negocio
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Pedidos procesados por resultado",
		},
		[]string{"operation", "outcome"},
	)
	CardsReserved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cards_reserved_total",
		Help:      "Tarjetas reservadas (stock descontado) por pedidos",
	})
	ShipmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_total",
			Help:      "Eventos de envío",
		},
		[]string{"event"},
	)
	RosterValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_validations_total",
			Help:      "Archivos de nómina validados por estado",
		},
		[]string{"status"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RequestDuration, RequestsTotal, ErrorsTotal,
		OrdersTotal, CardsReserved, ShipmentsTotal, RosterValidations,
	}
}

// Register registra todas las métricas en reg (normalmente prometheus.DefaultRegisterer).
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Middleware registra conteo, duración y errores por ruta.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		method := c.Method()
		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		code := strconv.Itoa(status)

		RequestsTotal.WithLabelValues(method, path).Inc()
		RequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		if status >= 400 {
			ErrorsTotal.WithLabelValues(method, path, code).Inc()
		}
		return err
	}
}

// Handler endpoint /metrics.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// RecordOrder cuenta un pedido procesado (operation: reservar, aprobar, rechazar; outcome: ok o código de error).
func RecordOrder(operation, outcome string) {
	OrdersTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordReserved suma tarjetas reservadas.
func RecordReserved(qty int) {
	CardsReserved.Add(float64(qty))
}

// RecordShipment cuenta un evento de envío (creado, entregado).
func RecordShipment(event string) {
	ShipmentsTotal.WithLabelValues(event).Inc()
}

// RecordRoster cuenta una validación de nómina por estado final.
func RecordRoster(status string) {
	RosterValidations.WithLabelValues(status).Inc()
}
