package validate

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required role columns that are unset or absent from
// the input table. It is never retried; callers show it to the user as is.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "validate: required columns not found: " + strings.Join(e.Missing, ", ")
}

// requiredRoles are the roles aggregation cannot run without.
var requiredRoles = []Role{RolePerson, RoleCostCenter, RoleActivity}

// checkRequired returns a *ConfigurationError naming every required column that the
// table lacks. Unset roles are reported by role name.
func checkRequired(has func(string) bool, roles RoleMap) error {
	var missing []string
	for _, r := range requiredRoles {
		col := roles.Get(r)
		switch {
		case col == "":
			missing = append(missing, fmt.Sprintf("<%s>", r))
		case !has(col):
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}
