package auth

import "go.uber.org/fx"

// Module wires the PIN hashing strategy for dependency injection.
var Module = fx.Provide(
	func() PinHasher { return NewBcryptHasher(0) },
)
