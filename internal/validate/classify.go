package validate

// Observations, in the order Classify emits them.
const (
	ObsMultipleCostCenters = "Tiene mas de un CECO"
	ObsMultipleActivities  = "Tiene mas de una Actividad"
	ObsEmptyCostCenter     = "Tiene CECO vacio"
	ObsEmptyActivity       = "Tiene Actividad vacia"
	ObsMultipleDates       = "Tiene mas de una fecha en el archivo"
	ObsOmittedRows         = "Se omitieron actividades para validar CECO " +
		"(Cosecha/Lavado de Jarras/Acopio/Estibadores y Cod. Actividad omitido)"
)

// Classify fills agg.Observations and agg.HasIssues from its derived flags.
//
// Only a split or missing CECO and a missing activity count as issues. Multiple
// activities and multiple dates are reported but do not flag the person until the
// activity mapping is agreed with operations.
func Classify(agg *PersonAggregate) {
	obs := make([]string, 0, 6)
	if agg.MultipleCostCenters {
		obs = append(obs, ObsMultipleCostCenters)
	}
	if agg.MultipleActivities {
		obs = append(obs, ObsMultipleActivities)
	}
	if agg.HasEmptyCostCenter {
		obs = append(obs, ObsEmptyCostCenter)
	}
	if agg.HasEmptyActivity {
		obs = append(obs, ObsEmptyActivity)
	}
	if agg.MultipleDates {
		obs = append(obs, ObsMultipleDates)
	}
	if agg.OmittedRows > 0 {
		obs = append(obs, ObsOmittedRows)
	}

	agg.Observations = obs
	agg.HasIssues = agg.MultipleCostCenters || agg.HasEmptyCostCenter || agg.HasEmptyActivity
}
