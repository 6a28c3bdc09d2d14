package repository

import "github.com/jvargas/trazalote/internal/domain/entity"

// GenealogyRepository puerto de persistencia del grafo de genealogía.
type GenealogyRepository interface {
	Create(edge *entity.LotGenealogy) error
	// ByParent aristas donde el lote es padre (materiales que consumió),
	// orden de creación.
	ByParent(parentLotID string) ([]*entity.LotGenealogy, error)
	// ByChild aristas donde el lote es hijo (a dónde fue su material),
	// orden de creación.
	ByChild(childLotID string) ([]*entity.LotGenealogy, error)
}
