package module

import (
	"fmt"
	"reflect"
)

// PortSet is a marker for module defined port sets
// modules return their own concrete Ports struct from Ports()
type PortSet = any

// PortsOf pulls an interface T out of a module's Ports() bundle.
// The bundle may implement T itself or carry it in an exported field,
// directly or behind a pointer
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return t, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf is PortsOf that panics when the port is missing
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	var zero T
	panic(fmt.Sprintf("module: requested port not found on module %s (want %T)", m.Name(), &zero))
}
