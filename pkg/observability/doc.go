/*
Package observability turns machine lifecycle events into Prometheus metrics
and structured log records.

Both are exposed as domain.LifecycleHooks, so they plug into any machine:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	...
	m, err := turing.New(def,
		turing.WithLifecycleHooks(metrics.Hooks()),
		turing.WithLifecycleHooks(observability.LogHooks(logger)),
	)
*/
package observability
