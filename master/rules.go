// FILE: lixenwraith/flags/master/rules.go
package master

import (
	"errors"

	"github.com/lixenwraith/flags"
)

// Validator names referenced by After dependencies.
const (
	RolesRule   = "roles"
	WeightsRule = "weights"
)

// Rules returns the semantic rules of the master flag set in registration
// order.
func Rules() []flags.Validator {
	return []flags.Validator{
		flags.PercentRange("recovery_slave_removal_limit"),
		flags.PositiveDuration("allocation_interval"),
		flags.OneOf("registry", Registries...),
		flags.OneOf("user_sorter", Sorters...),
		flags.OneOf("framework_sorter", Sorters...),
		flags.Check(RolesRule, checkRoles),
		weightsNeedRoles,
		flags.DependsOn(flags.Check(WeightsRule, checkWeights), RolesRule, weightsNeedRoles.Name),
	}
}

var weightsNeedRoles = flags.Requires("weights", "roles")

// checkRoles rejects repeated role names.
func checkRoles(v *flags.Values) error {
	roles, ok := flags.Lookup[[]string](v, "roles")
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(roles))
	for _, role := range roles {
		if seen[role] {
			return flags.Errorf(v, "roles", flags.ErrConsistency, "role %q is listed more than once", role)
		}
		seen[role] = true
	}
	return nil
}

// checkWeights requires every weighted role to be declared in --roles and
// every weight to be positive.
func checkWeights(v *flags.Values) error {
	weights, ok := flags.Lookup[*flags.OrderedMap[float64]](v, "weights")
	if !ok || weights.Len() == 0 {
		return nil
	}
	var errs []error
	if err := flags.KeysIn[float64]("weights", "roles").Check(v); err != nil {
		errs = append(errs, err)
	}
	for _, role := range weights.Keys() {
		if w, _ := weights.Get(role); w <= 0 {
			errs = append(errs, flags.Errorf(v, "weights", flags.ErrRange, "weight of role %q must be positive, got %g", role, w))
		}
	}
	return errors.Join(errs...)
}
