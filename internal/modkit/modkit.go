// Package modkit provides module wiring and core deps
package modkit

import "prodanalytics/internal/modkit/module"

// Module is the common surface for service modules that expose ports
// keep this tiny so modules stay decoupled
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules expose Build with this shape next to their typed New
type Builder func(Deps, ...Option) (Module, error)
