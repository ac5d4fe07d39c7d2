// Package logger provides a zap-based stats collector that logs metrics.
// Useful in development, where a Prometheus registry is more machinery
// than the situation calls for.
package logger

import (
	"go.uber.org/zap"

	"github.com/discochess/middlegame/internal/stats"
)

// Collector implements stats.Collector by logging every metric update
// at debug level.
type Collector struct {
	log *zap.Logger
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new logger-based collector.
// If log is nil, a no-op logger is used.
func New(log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{log: log}
}

// IncCounter logs a counter increment.
func (c *Collector) IncCounter(name string, delta int64) {
	c.emit("counter", name, zap.Int64("delta", delta))
}

// SetGauge logs a gauge value.
func (c *Collector) SetGauge(name string, value int64) {
	c.emit("gauge", name, zap.Int64("value", value))
}

// ObserveHistogram logs a histogram observation.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.emit("histogram", name, zap.Float64("value", value))
}

func (c *Collector) emit(kind, name string, field zap.Field) {
	c.log.Debug(kind, zap.String("metric", name), field)
}
