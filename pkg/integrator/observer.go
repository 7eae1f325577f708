package integrator

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// Observer receives tracing events. It is the only diagnostics channel of the tracer.
// Implementations are called concurrently from render workers.
type Observer interface {
	Hit(ray core.Ray, remainingDepth int, hit geometry.Hit)
	Miss(ray core.Ray, remainingDepth int)
	Shadow(shadowRay core.Ray, light int, occluded bool)
	Reflect(ray core.Ray, remainingDepth int)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) Hit(core.Ray, int, geometry.Hit) {}
func (NopObserver) Miss(core.Ray, int)              {}
func (NopObserver) Shadow(core.Ray, int, bool)      {}
func (NopObserver) Reflect(core.Ray, int)           {}

// CountingObserver counts events with atomic counters
type CountingObserver struct {
	Hits        atomic.Int64
	Misses      atomic.Int64
	ShadowRays  atomic.Int64
	Occluded    atomic.Int64
	Reflections atomic.Int64
}

func (c *CountingObserver) Hit(core.Ray, int, geometry.Hit) { c.Hits.Add(1) }
func (c *CountingObserver) Miss(core.Ray, int)              { c.Misses.Add(1) }
func (c *CountingObserver) Reflect(core.Ray, int)           { c.Reflections.Add(1) }

func (c *CountingObserver) Shadow(_ core.Ray, _ int, occluded bool) {
	c.ShadowRays.Add(1)
	if occluded {
		c.Occluded.Add(1)
	}
}

// LogObserver writes every event to a zap logger at debug level
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver creates an observer logging to log
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log.Named("tracer")}
}

func (o *LogObserver) Hit(ray core.Ray, remainingDepth int, hit geometry.Hit) {
	if ce := o.log.Check(zapcore.DebugLevel, "ray hit"); ce != nil {
		ce.Write(
			zap.Int("depth", remainingDepth),
			zap.Float64("t", hit.Distance),
			zap.Float64s("point", hit.Point[:]),
		)
	}
}

func (o *LogObserver) Miss(ray core.Ray, remainingDepth int) {
	if ce := o.log.Check(zapcore.DebugLevel, "ray missed"); ce != nil {
		ce.Write(zap.Int("depth", remainingDepth), zap.Float64s("direction", ray.Direction[:]))
	}
}

func (o *LogObserver) Shadow(shadowRay core.Ray, light int, occluded bool) {
	if ce := o.log.Check(zapcore.DebugLevel, "shadow ray"); ce != nil {
		ce.Write(zap.Int("light", light), zap.Bool("occluded", occluded))
	}
}

func (o *LogObserver) Reflect(ray core.Ray, remainingDepth int) {
	if ce := o.log.Check(zapcore.DebugLevel, "reflection"); ce != nil {
		ce.Write(zap.Int("depth", remainingDepth), zap.Float64s("origin", ray.Origin[:]))
	}
}

// MultiObserver forwards every event to each observer in turn
type MultiObserver []Observer

func (m MultiObserver) Hit(ray core.Ray, remainingDepth int, hit geometry.Hit) {
	for _, o := range m {
		o.Hit(ray, remainingDepth, hit)
	}
}

func (m MultiObserver) Miss(ray core.Ray, remainingDepth int) {
	for _, o := range m {
		o.Miss(ray, remainingDepth)
	}
}

func (m MultiObserver) Shadow(shadowRay core.Ray, light int, occluded bool) {
	for _, o := range m {
		o.Shadow(shadowRay, light, occluded)
	}
}

func (m MultiObserver) Reflect(ray core.Ray, remainingDepth int) {
	for _, o := range m {
		o.Reflect(ray, remainingDepth)
	}
}
