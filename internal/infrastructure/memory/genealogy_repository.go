package memory

import (
	"time"

	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// GenealogyRepository implementa repository.GenealogyRepository en memoria.
type GenealogyRepository struct {
	s *Store
}

var _ repository.GenealogyRepository = (*GenealogyRepository)(nil)

// Create inserta la arista y le asigna el id secuencial.
func (r *GenealogyRepository) Create(edge *entity.LotGenealogy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.genSeq++
	copia := *edge
	copia.ID = r.s.genSeq
	if copia.CreatedAt.IsZero() {
		copia.CreatedAt = time.Now()
	}
	r.s.genealogy = append(r.s.genealogy, &copia)
	edge.ID = copia.ID
	return nil
}

// ByParent aristas donde el lote es padre, orden de creación.
func (r *GenealogyRepository) ByParent(parentLotID string) ([]*entity.LotGenealogy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.LotGenealogy
	for _, e := range r.s.genealogy {
		if e.ParentLotID == parentLotID {
			copia := *e
			out = append(out, &copia)
		}
	}
	return out, nil
}

// ByChild aristas donde el lote es hijo, orden de creación.
func (r *GenealogyRepository) ByChild(childLotID string) ([]*entity.LotGenealogy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.LotGenealogy
	for _, e := range r.s.genealogy {
		if e.ChildLotID == childLotID {
			copia := *e
			out = append(out, &copia)
		}
	}
	return out, nil
}
