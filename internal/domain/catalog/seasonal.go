package catalog

// Tablas estacionales: multiplicador por mes calendario (índice 1-12,
// el índice 0 no se usa) para los cuatro procesos del negocio.
var (
	SeasonalAcquisition = [13]float64{0, 1.4, 1.6, 1.2, 1.0, 0.9, 0.7, 0.6, 0.8, 1.5, 1.6, 1.3, 0.8}
	SeasonalChurn       = [13]float64{0, 1.3, 1.1, 1.0, 0.9, 0.9, 1.0, 1.1, 1.0, 0.8, 0.7, 0.8, 1.2}
	SeasonalExpansion   = [13]float64{0, 0.8, 0.9, 1.2, 1.3, 1.1, 1.0, 0.9, 1.0, 1.4, 1.5, 1.2, 0.9}
	SeasonalUpgrades    = [13]float64{0, 1.1, 1.2, 1.3, 1.4, 1.0, 0.9, 0.8, 0.9, 1.2, 1.3, 1.1, 1.0}
)

// SizeFactor tendencias derivadas de la categoría de tamaño de empresa.
type SizeFactor struct {
	SeatsTendency   float64
	UpgradeTendency float64
	Budget          float64
	CACMultiplier   float64
}

// CompanySizes categorías en orden fijo (el orden importa para el determinismo).
var CompanySizes = []string{
	"Startup (1-10)",
	"Small (11-50)",
	"Medium (51-200)",
	"Large (201-1000)",
	"Enterprise (1000+)",
}

// SizeFactors tendencias por categoría de tamaño.
var SizeFactors = map[string]SizeFactor{
	"Startup (1-10)":    {SeatsTendency: 1.2, UpgradeTendency: 0.8, Budget: 0.7, CACMultiplier: 0.8},
	"Small (11-50)":     {SeatsTendency: 1.5, UpgradeTendency: 1.0, Budget: 1.0, CACMultiplier: 1.0},
	"Medium (51-200)":   {SeatsTendency: 2.0, UpgradeTendency: 1.3, Budget: 1.5, CACMultiplier: 1.5},
	"Large (201-1000)":  {SeatsTendency: 3.0, UpgradeTendency: 1.5, Budget: 2.0, CACMultiplier: 2.0},
	"Enterprise (1000+)": {SeatsTendency: 5.0, UpgradeTendency: 1.2, Budget: 3.0, CACMultiplier: 3.0},
}

// AcquisitionChannels canales en orden fijo.
var AcquisitionChannels = []string{
	"Organic Search", "Paid Search", "Social Media", "Referral",
	"Direct", "Content Marketing", "Trade Show", "Cold Outreach",
	"Partner", "Webinar", "Free Trial",
}

// ChannelBaseCAC costo base de adquisición por canal (USD).
var ChannelBaseCAC = map[string]float64{
	"Organic Search":    500,
	"Paid Search":       1250,
	"Social Media":      900,
	"Referral":          250,
	"Direct":            600,
	"Content Marketing": 750,
	"Trade Show":        2500,
	"Cold Outreach":     3500,
	"Partner":           1500,
	"Webinar":           1000,
	"Free Trial":        400,
}

// Industries industrias posibles de un cliente.
var Industries = []string{
	"Technology", "Healthcare", "Finance", "Retail",
	"Manufacturing", "Education", "Marketing", "Consulting",
	"Real Estate", "Media", "Legal", "Non-profit",
}

// Geographies regiones posibles de un cliente.
var Geographies = []string{
	"North America", "Europe", "Asia-Pacific", "Latin America", "Other",
}

// ChurnReasons razones de churn posibles.
var ChurnReasons = []string{
	"Price sensitivity", "Lack of features", "Poor support",
	"Competitor switch", "Budget cuts", "No longer needed",
	"Technical issues", "Merger/acquisition", "Poor onboarding",
	"Low usage", "Feature gaps", "Better alternative found",
}

// PaymentMethods métodos de pago en orden fijo.
var PaymentMethods = []string{"Credit Card", "ACH", "Wire Transfer", "PayPal"}

// PaymentSuccessRate probabilidad de pago exitoso por método.
// El refund es fijo en 0.01 y el resto es fallo.
var PaymentSuccessRate = map[string]float64{
	"Credit Card":   0.94,
	"ACH":           0.96,
	"Wire Transfer": 0.99,
	"PayPal":        0.93,
}

// RefundRate probabilidad fija de refund por ciclo de pago.
const RefundRate = 0.01

// IssueCategories categorías de tickets de soporte.
var IssueCategories = []string{
	"Billing Issue", "Technical Problem", "Feature Request",
	"Onboarding Help", "Account Management",
}

// BaseResolutionHours horas base de resolución por categoría.
var BaseResolutionHours = map[string]float64{
	"Billing Issue":      2,
	"Technical Problem":  8,
	"Feature Request":    24,
	"Onboarding Help":    3,
	"Account Management": 4,
}
