// Package metrics exposes Prometheus counters for rule library and store
// activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector registers and records the forge metrics. A nil *Collector is
// safe to call: every recording method no-ops, so components take an
// optional collector without guarding each call site.
type Collector struct {
	registry *prometheus.Registry

	libraryLoads       prometheus.Counter
	libraryReloads     prometheus.Counter
	validationFailures prometheus.Counter
	rulesExported      prometheus.Counter
	storeOperations    *prometheus.CounterVec
}

// NewCollector creates a collector registered against the given registry.
// If registry is nil, a fresh registry is used.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		libraryLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forge",
			Subsystem: "library",
			Name:      "rules_loaded_total",
			Help:      "Total rule documents loaded from the library directory.",
		}),
		libraryReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forge",
			Subsystem: "library",
			Name:      "reloads_total",
			Help:      "Total library reloads triggered by file changes.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forge",
			Subsystem: "library",
			Name:      "validation_failures_total",
			Help:      "Total rule documents rejected by validation.",
		}),
		rulesExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forge",
			Subsystem: "export",
			Name:      "rules_exported_total",
			Help:      "Total rule documents exported to files.",
		}),
		storeOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forge",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total store operations by kind.",
		}, []string{"operation"}),
	}

	registry.MustRegister(
		c.libraryLoads,
		c.libraryReloads,
		c.validationFailures,
		c.rulesExported,
		c.storeOperations,
	)
	return c
}

// Registry returns the underlying Prometheus registry, for serving.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordRuleLoaded counts a rule document loaded from the library.
func (c *Collector) RecordRuleLoaded() {
	if c == nil {
		return
	}
	c.libraryLoads.Inc()
}

// RecordReload counts a library reload.
func (c *Collector) RecordReload() {
	if c == nil {
		return
	}
	c.libraryReloads.Inc()
}

// RecordValidationFailure counts a document rejected by validation.
func (c *Collector) RecordValidationFailure() {
	if c == nil {
		return
	}
	c.validationFailures.Inc()
}

// RecordExport counts a rule exported to a file.
func (c *Collector) RecordExport() {
	if c == nil {
		return
	}
	c.rulesExported.Inc()
}

// RecordStoreOperation counts a store operation ("save", "get", "list",
// "delete").
func (c *Collector) RecordStoreOperation(operation string) {
	if c == nil {
		return
	}
	c.storeOperations.WithLabelValues(operation).Inc()
}
