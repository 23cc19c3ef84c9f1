// Package validate checks per-person consistency of cost-center (CECO) and activity
// assignment in attendance exports.
package validate

import (
	"strings"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// Role is the semantic meaning of an input column.
type Role string

const (
	RolePerson       Role = "person"
	RoleDocument     Role = "document"
	RoleDate         Role = "date"
	RoleCostCenter   Role = "cost_center"
	RoleActivity     Role = "activity"
	RoleActivityCode Role = "activity_code"
)

// Roles lists every role in display order.
var Roles = []Role{RolePerson, RoleDocument, RoleDate, RoleCostCenter, RoleActivity, RoleActivityCode}

// roleKeywords maps each role to the header fragments that identify it. Column order
// decides which header wins; fragment order does not matter.
var roleKeywords = []struct {
	role     Role
	keywords []string
}{
	{RolePerson, []string{"nombre", "persona", "empleado", "trabajador", "name", "employee"}},
	{RoleDocument, []string{"documento", "doc", "dni", "cedula", "cédula", "identificacion", "identificación", "ruc", "nro doc"}},
	{RoleDate, []string{"fecha", "date", "dia", "día", "day"}},
	{RoleCostCenter, []string{"ceco", "centro de costo", "centro costo", "cost center"}},
	{RoleActivity, []string{"actividad", "labor", "trabajo", "task"}},
	{RoleActivityCode, []string{"cod actividad", "cod. actividad", "codigo actividad", "código actividad", "activity code"}},
}

// RoleMap assigns column names to roles. An empty string means the role is unset.
// It is a value type; copies never alias.
type RoleMap struct {
	Person       string
	Document     string
	Date         string
	CostCenter   string
	Activity     string
	ActivityCode string
}

// Get returns the column bound to a role.
func (m RoleMap) Get(r Role) string {
	switch r {
	case RolePerson:
		return m.Person
	case RoleDocument:
		return m.Document
	case RoleDate:
		return m.Date
	case RoleCostCenter:
		return m.CostCenter
	case RoleActivity:
		return m.Activity
	case RoleActivityCode:
		return m.ActivityCode
	}
	return ""
}

// With returns a copy of m with role r bound to col.
func (m RoleMap) With(r Role, col string) RoleMap {
	switch r {
	case RolePerson:
		m.Person = col
	case RoleDocument:
		m.Document = col
	case RoleDate:
		m.Date = col
	case RoleCostCenter:
		m.CostCenter = col
	case RoleActivity:
		m.Activity = col
	case RoleActivityCode:
		m.ActivityCode = col
	}
	return m
}

// Override returns m with every non-empty binding of o applied on top.
func (m RoleMap) Override(o RoleMap) RoleMap {
	for _, r := range Roles {
		if col := o.Get(r); col != "" {
			m = m.With(r, col)
		}
	}
	return m
}

// SuggestRoles guesses a role for each column header. For every role the first
// column whose lowercase name contains one of the role's keywords wins. Person falls
// back to the first column; every other role stays unset when nothing matches.
func SuggestRoles(columns []string) RoleMap {
	var m RoleMap
	if len(columns) == 0 {
		return m
	}
	for _, rk := range roleKeywords {
		m = m.With(rk.role, detectColumn(columns, rk.keywords))
	}
	if m.Person == "" {
		m.Person = columns[0]
	}
	return m
}

// SuggestTableRoles is SuggestRoles over a loaded table's header.
func SuggestTableRoles(t *table.Table) RoleMap {
	return SuggestRoles(t.Columns)
}

func detectColumn(columns []string, keywords []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col
			}
		}
	}
	return ""
}
