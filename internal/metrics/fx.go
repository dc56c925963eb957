package metrics

import "go.uber.org/fx"

// Module wires the prometheus counters.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
