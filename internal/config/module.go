package config

import "go.uber.org/fx"

// Module exposes the configuration loader and resolved timezone for fx graphs.
var Module = fx.Provide(Load, Location)
