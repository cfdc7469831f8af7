package modkit

// Option mutates build configuration for a module
type Option func(*buildCfg)

// buildCfg is internal wiring state for options
type buildCfg struct {
	name     string
	prefix   string
	ports    any
	settings any
}

// WithName sets a module name used in logs and registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithConfigPrefix overrides the env prefix the module reads its options from
func WithConfigPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithPorts injects cross module ports declared by another module
// the concrete type is owned by the importing module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithSettings hands a module its already resolved options, skipping the env lookup.
// The concrete type is owned by the module
func WithSettings[T any](s T) Option {
	return func(c *buildCfg) { c.settings = s }
}
