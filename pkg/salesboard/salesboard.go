package salesboard

import (
	core "github.com/goliatone/go-salesboard/components/salesboard"
)

// Service exposes the underlying components/salesboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Repository re-export so data adapters need a single import.
type Repository = core.Repository

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// DefaultTokens proxies to the design token defaults.
func DefaultTokens() core.Tokens {
	return core.DefaultTokens()
}
