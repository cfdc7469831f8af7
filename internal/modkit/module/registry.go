package module

import "sync"

// process wide port registry, filled by main while wiring commands
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a port set for a module name, replacing any earlier one
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// RegisterModule stores m's ports under m's name
func RegisterModule(m Module) { Register(m.Name(), m.Ports()) }

// PortsAs fetches and type asserts a port set for name
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]any{}
}
