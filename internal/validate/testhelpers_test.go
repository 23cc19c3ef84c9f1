package validate

import (
	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// threeCol builds the Persona/CECO/Actividad table used across the tests.
func threeCol(rows ...[3]string) *table.Table {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r[0], r[1], r[2]})
	}
	return table.FromStrings([]string{"Persona", "CECO", "Actividad"}, records)
}

var threeColRoles = RoleMap{Person: "Persona", CostCenter: "CECO", Activity: "Actividad"}

func findPerson(t interface{ Fatalf(string, ...any) }, r *Report, name string) PersonAggregate {
	for _, p := range r.Persons {
		if p.Person == name {
			return p
		}
	}
	t.Fatalf("person %q not in report", name)
	return PersonAggregate{}
}
