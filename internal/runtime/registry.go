package runtime

import (
	"fmt"

	"github.com/kubev2v/vehicle-runtime/pkg/module"
)

// record is the controller's bookkeeping for one registered module: its
// declared name and dependencies (duplicated off the Module for quick
// lookup), its current lifecycle state, and a counter of starting-phase
// stall checks that have observed no progress (reset to zero when the
// module enters starting and when it reaches operational).
type record struct {
	mod          module.Module
	name         string
	dependencies []string
	state        module.State
	stallChecks  int
}

// registerModule validates and appends m to the registry. Duplicate names
// are rejected; names are resolved against declared dependencies only at
// topologicalOrder time, once the whole registry is known.
func (c *Controller) registerModule(m module.Module) error {
	name := m.Name()
	if name == "" {
		return fmt.Errorf("runtime: module has an empty name")
	}
	for _, r := range c.records {
		if r.name == name {
			return fmt.Errorf("runtime: duplicate module name %q", name)
		}
	}
	c.records = append(c.records, &record{
		mod:          m,
		name:         name,
		dependencies: m.Dependencies(),
		state:        module.NotInitialized,
	})
	return nil
}

// topologicalOrder returns the registry in dependency order (a module
// always appears after every module it depends on), or an error if a
// dependency name is unknown or the graph has a cycle.
func (c *Controller) topologicalOrder() ([]*record, error) {
	byName := make(map[string]*record, len(c.records))
	for _, r := range c.records {
		byName[r.name] = r
	}
	for _, r := range c.records {
		for _, dep := range r.dependencies {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("runtime: module %q declares unknown dependency %q", r.name, dep)
			}
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(c.records))
	order := make([]*record, 0, len(c.records))

	var visit func(r *record) error
	visit = func(r *record) error {
		switch color[r.name] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("runtime: dependency cycle involving module %q", r.name)
		}
		color[r.name] = gray
		for _, dep := range r.dependencies {
			if err := visit(byName[dep]); err != nil {
				return err
			}
		}
		color[r.name] = black
		order = append(order, r)
		return nil
	}

	for _, r := range c.records {
		if err := visit(r); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// dependenciesOperational reports whether every dependency of r has reached
// Operational.
func dependenciesOperational(byName map[string]*record, r *record) bool {
	for _, dep := range r.dependencies {
		if byName[dep].state != module.Operational {
			return false
		}
	}
	return true
}
