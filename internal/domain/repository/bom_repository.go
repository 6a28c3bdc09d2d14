package repository

import "github.com/jvargas/trazalote/internal/domain/entity"

// BOMRepository puerto de persistencia del grafo BOM.
type BOMRepository interface {
	// AddComponent inserta la arista. Devuelve domain.ErrDuplicate si ya
	// existe una arista con el mismo padre, componente y rol.
	AddComponent(c *entity.BOMComponent) error
	// Components devuelve las aristas salientes crudas de un padre
	// (para chequeo de alcanzabilidad).
	Components(parentItemID string) ([]*entity.BOMComponent, error)
	// DirectComponents devuelve las líneas con el artículo resuelto,
	// ordenadas por rol y luego nombre del componente.
	DirectComponents(parentItemID string) ([]*entity.ComponentLine, error)
}
