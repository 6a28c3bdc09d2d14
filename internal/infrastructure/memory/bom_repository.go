package memory

import (
	"sort"
	"time"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// BOMRepository implementa repository.BOMRepository en memoria.
type BOMRepository struct {
	s *Store
}

var _ repository.BOMRepository = (*BOMRepository)(nil)

// AddComponent inserta la arista; ErrDuplicate si ya existe con el mismo rol.
func (r *BOMRepository) AddComponent(c *entity.BOMComponent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.bomEdges {
		if e.ParentItemID == c.ParentItemID && e.ComponentItemID == c.ComponentItemID && e.UsageType == c.UsageType {
			return domain.ErrDuplicate
		}
	}
	copia := *c
	if copia.CreatedAt.IsZero() {
		copia.CreatedAt = time.Now()
	}
	r.s.bomEdges = append(r.s.bomEdges, &copia)
	return nil
}

// Components aristas salientes crudas de un padre.
func (r *BOMRepository) Components(parentItemID string) ([]*entity.BOMComponent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.BOMComponent
	for _, e := range r.s.bomEdges {
		if e.ParentItemID == parentItemID {
			copia := *e
			out = append(out, &copia)
		}
	}
	return out, nil
}

// DirectComponents líneas con el artículo resuelto, ordenadas por rol y
// nombre. Una referencia rota deja Item en nil (el caso de uso descarta la
// rama).
func (r *BOMRepository) DirectComponents(parentItemID string) ([]*entity.ComponentLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.ComponentLine
	for _, e := range r.s.bomEdges {
		if e.ParentItemID != parentItemID {
			continue
		}
		out = append(out, &entity.ComponentLine{
			Quantity:  e.Quantity,
			UsageType: e.UsageType,
			Item:      r.s.itemCopy(e.ComponentItemID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageType != out[j].UsageType {
			return out[i].UsageType < out[j].UsageType
		}
		ni, nj := "", ""
		if out[i].Item != nil {
			ni = out[i].Item.ItemName
		}
		if out[j].Item != nil {
			nj = out[j].Item.ItemName
		}
		return ni < nj
	})
	return out, nil
}
