// FILE: lixenwraith/flags/validate.go
package flags

import (
	"fmt"
	"strings"
)

// Validator is a semantic rule over the coerced configuration. Validators
// named in After run first; if any of them fails this one is skipped.
type Validator struct {
	Name  string
	After []string
	Check func(v *Values) error
}

type validatorNode struct {
	Validator
	index int // registration order, used to break ties
}

// AddValidator registers a semantic rule. A dependency cycle among the
// registered validators is rejected with ErrValidatorCycle. After may name
// validators that are registered later.
func (r *Registry) AddValidator(v Validator) error {
	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot add validator %q", ErrRegistryFrozen, v.Name)
	}
	if v.Name == "" || v.Check == nil {
		return fmt.Errorf("validator needs a name and a check function")
	}
	if _, exists := r.vindex[v.Name]; exists {
		return fmt.Errorf("%w: validator %q", ErrDuplicateName, v.Name)
	}

	node := &validatorNode{Validator: v, index: len(r.validators)}
	r.validators = append(r.validators, node)
	r.vindex[v.Name] = node.index

	if cycle := r.findCycle(v.Name); cycle != nil {
		r.validators = r.validators[:node.index]
		delete(r.vindex, v.Name)
		return fmt.Errorf("%w: %s", ErrValidatorCycle, strings.Join(cycle, " -> "))
	}
	return nil
}

// MustAddValidator is like AddValidator but panics on error.
func (r *Registry) MustAddValidator(v Validator) {
	if err := r.AddValidator(v); err != nil {
		panic(fmt.Sprintf("validator registration failed: %v", err))
	}
}

// findCycle walks the After edges from start and returns the path of the
// first cycle that leads back to start. Unknown names are skipped.
func (r *Registry) findCycle(start string) []string {
	visited := make(map[string]bool)
	var path []string

	var walk func(name string) bool
	walk = func(name string) bool {
		path = append(path, name)
		idx, ok := r.vindex[name]
		if ok {
			for _, dep := range r.validators[idx].After {
				if dep == start {
					path = append(path, dep)
					return true
				}
				if visited[dep] {
					continue
				}
				visited[dep] = true
				if walk(dep) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if walk(start) {
		return path
	}
	return nil
}

// validatorOrder returns the validators sorted so that every validator runs
// after its dependencies, ties broken by registration order.
func (r *Registry) validatorOrder() ([]*validatorNode, error) {
	remaining := make(map[string]int, len(r.validators))
	dependents := make(map[string][]string)
	for _, node := range r.validators {
		for _, dep := range node.After {
			if _, ok := r.vindex[dep]; !ok {
				return nil, fmt.Errorf("%w: validator %q runs after %q", ErrUnknownValidator, node.Name, dep)
			}
			dependents[dep] = append(dependents[dep], node.Name)
		}
		remaining[node.Name] = len(node.After)
	}

	ordered := make([]*validatorNode, 0, len(r.validators))
	done := make(map[string]bool, len(r.validators))
	for len(ordered) < len(r.validators) {
		progressed := false
		for _, node := range r.validators {
			if done[node.Name] || remaining[node.Name] > 0 {
				continue
			}
			done[node.Name] = true
			ordered = append(ordered, node)
			for _, d := range dependents[node.Name] {
				remaining[d]--
			}
			progressed = true
			break // restart so earlier-registered validators go first
		}
		if !progressed {
			// AddValidator rejects cycles, so this is unreachable in practice
			return nil, fmt.Errorf("%w among registered validators", ErrValidatorCycle)
		}
	}
	return ordered, nil
}

// runValidators executes the ordered validators, skipping those whose
// dependencies failed.
func runValidators(ordered []*validatorNode, values *Values, errs *collector) {
	failed := make(map[string]bool)
	for _, node := range ordered {
		skip := false
		for _, dep := range node.After {
			if failed[dep] {
				skip = true
				break
			}
		}
		if skip {
			failed[node.Name] = true
			continue
		}

		if err := node.Check(values); err != nil {
			failed[node.Name] = true
			errs.addErr("", "", ErrConsistency, err)
		}
	}
}
