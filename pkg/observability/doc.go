/*
Package observability turns validation lifecycle hooks into metrics and logs.

Metrics exposes Prometheus counters and histograms; LogHooks writes one
structured record per validation. Both produce validate.Hooks and can be
combined with Chain:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Chain(metrics.Hooks(), observability.LogHooks(logger))
	v := validate.New(validate.WithHooks(hooks))
*/
package observability
