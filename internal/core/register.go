package core

import "fmt"

// Registrar receives global component registrations during app bootstrap.
type Registrar interface {
	Component(name string, binding string) error
}

// RegisterGlobals performs, once and explicitly, the registration the
// generated plugin runs at setup: every global component under its bare name
// and its Lazy name, both pointing at the same binding.
func RegisterGlobals(r Registrar, components []Component) error {
	for _, reg := range GlobalRegistrations(components) {
		if err := r.Component(reg.Name, reg.Binding); err != nil {
			return fmt.Errorf("register %s: %w", reg.Name, err)
		}
		if err := r.Component(LazyName(reg.Name), reg.Binding); err != nil {
			return fmt.Errorf("register %s: %w", LazyName(reg.Name), err)
		}
	}
	return nil
}
