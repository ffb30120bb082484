package catalog

// featureWeight probabilidad relativa de una feature según si el plan la
// incluye o no (las features fuera del plan aún aparecen con peso residual:
// trials, páginas de marketing, límites blandos).
type featureWeight struct {
	name    string
	with    float64  // peso si el plan incluye alguna de las gates
	without float64  // peso si no
	gates   []string // vacío = peso fijo `with`
}

var featureWeights = []featureWeight{
	{name: "login", with: 0.9},
	{name: "dashboard_view", with: 0.8},
	{name: "basic_report", with: 0.7, without: 0.3, gates: []string{"basic_analytics"}},
	{name: "advanced_analytics", with: 0.6, without: 0.1, gates: []string{"advanced_analytics"}},
	{name: "integrations", with: 0.5, without: 0.05, gates: []string{"integrations"}},
	{name: "phone_support", with: 0.2, without: 0.01, gates: []string{"phone_support"}},
	{name: "custom_dashboards", with: 0.4, without: 0.01, gates: []string{"custom_dashboards"}},
	{name: "api_access", with: 0.3, without: 0.01, gates: []string{"api_access"}},
	{name: "white_label", with: 0.1, without: 0.005, gates: []string{"white_label"}},
	{name: "sso", with: 0.15, without: 0.005, gates: []string{"sso"}},
	{name: "custom_integrations", with: 0.2, without: 0.005, gates: []string{"custom_integrations"}},
	{name: "customer_success_manager", with: 0.05, without: 0.001, gates: []string{"customer_success_manager"}},
	{name: "report_generated", with: 0.6},
	{name: "data_export", with: 0.4, without: 0.1, gates: []string{"basic_analytics", "advanced_analytics"}},
	{name: "api_call", with: 0.3, without: 0.05, gates: []string{"api_access"}},
	{name: "file_upload", with: 0.5},
	{name: "user_invite", with: 0.4},
}

// FeatureWeights devuelve las features disponibles y sus pesos normalizados
// (suman 1) condicionados a las features del plan.
func FeatureWeights(p Plan) (names []string, weights []float64) {
	names = make([]string, 0, len(featureWeights))
	weights = make([]float64, 0, len(featureWeights))

	var total float64
	for _, fw := range featureWeights {
		w := fw.with
		if len(fw.gates) > 0 {
			w = fw.without
			for _, g := range fw.gates {
				if p.HasFeature(g) {
					w = fw.with
					break
				}
			}
		}
		names = append(names, fw.name)
		weights = append(weights, w)
		total += w
	}

	for i := range weights {
		weights[i] /= total
	}
	return names, weights
}
