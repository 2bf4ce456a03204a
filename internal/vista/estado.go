// Package vista holds the per-route view controllers of the storefront.
// Each view owns its render state exclusively, keyed by its route parameter;
// there is no shared mutable store across views.
package vista

// Fase is the render phase of a view or of one of its slices.
type Fase int

const (
	FaseCargando Fase = iota
	FaseListo
	FaseFallido
)

func (f Fase) String() string {
	switch f {
	case FaseCargando:
		return "cargando"
	case FaseListo:
		return "listo"
	case FaseFallido:
		return "fallido"
	default:
		return "desconocido"
	}
}

// Estado is the tagged render state driven by one or more fetches.
// Datos is only meaningful in FaseListo, Mensaje only in FaseFallido.
type Estado[T any] struct {
	Fase    Fase
	Datos   T
	Mensaje string
}

func Cargando[T any]() Estado[T] { return Estado[T]{Fase: FaseCargando} }

func Listo[T any](datos T) Estado[T] { return Estado[T]{Fase: FaseListo, Datos: datos} }

func Fallido[T any](mensaje string) Estado[T] {
	return Estado[T]{Fase: FaseFallido, Mensaje: mensaje}
}
