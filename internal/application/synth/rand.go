// Package synth implementa el generador de dataset sintético SaaS:
// clientes, ciclo de vida de suscripciones, add-ons, pagos, uso y soporte.
// Toda la aleatoriedad fluye por un único Rand sembrado explícitamente,
// de modo que una misma seed reproduce un dataset idéntico corrida a corrida.
package synth

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Rand fuente de aleatoriedad sembrada con los muestreadores que necesita
// el generador. No es segura para uso concurrente; el pipeline es secuencial.
type Rand struct {
	r *rand.Rand
}

// NewRand crea la fuente a partir de una seed fija.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Float64 uniforme en [0,1).
func (rn *Rand) Float64() float64 { return rn.r.Float64() }

// Intn uniforme en [0,n).
func (rn *Rand) Intn(n int) int { return rn.r.Intn(n) }

// IntBetween uniforme en [lo,hi] inclusive.
func (rn *Rand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rn.r.Intn(hi-lo+1)
}

// Bool true con probabilidad p.
func (rn *Rand) Bool(p float64) bool { return rn.r.Float64() < p }

// UniformRange uniforme en [lo,hi).
func (rn *Rand) UniformRange(lo, hi float64) float64 {
	return lo + rn.r.Float64()*(hi-lo)
}

// Exponential exponencial con media mean.
func (rn *Rand) Exponential(mean float64) float64 {
	return rn.r.ExpFloat64() * mean
}

// Normal normal con media mean y desviación stddev.
func (rn *Rand) Normal(mean, stddev float64) float64 {
	return rn.r.NormFloat64()*stddev + mean
}

// Poisson entero con media lambda (algoritmo de Knuth; para lambdas muy
// grandes cae a la aproximación normal para no degradar numéricamente).
func (rn *Rand) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	if lambda > 500 {
		n := math.Round(rn.Normal(lambda, math.Sqrt(lambda)))
		if n < 0 {
			return 0
		}
		return int(n)
	}
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rn.r.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Beta muestrea Beta(a,b) vía dos draws Gamma.
func (rn *Rand) Beta(a, b float64) float64 {
	x := rn.gamma(a)
	y := rn.gamma(b)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// gamma muestrea Gamma(shape, 1) con Marsaglia-Tsang; para shape < 1 usa
// el boost Gamma(shape+1) · U^(1/shape).
func (rn *Rand) gamma(shape float64) float64 {
	if shape < 1 {
		u := rn.r.Float64()
		return rn.gamma(shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rn.r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rn.r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// WeightedIndex elige un índice según pesos normalizados (suman ~1).
// Si la suma queda corta por redondeo, devuelve el último índice.
func (rn *Rand) WeightedIndex(weights []float64) int {
	u := rn.r.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(weights) - 1
}

// Choice elige un elemento uniforme del slice.
func (rn *Rand) Choice(items []string) string {
	return items[rn.r.Intn(len(items))]
}

// UUID genera un UUID v4 alimentado por esta fuente, para que los
// identificadores también sean reproducibles bajo la misma seed.
func (rn *Rand) UUID() string {
	u, err := uuid.NewRandomFromReader(rn.r)
	if err != nil {
		// rand.Rand.Read no falla; esto solo protege un cambio de contrato.
		return uuid.Nil.String()
	}
	return u.String()
}
