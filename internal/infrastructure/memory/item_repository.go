package memory

import (
	"sort"
	"strings"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// ItemRepository implementa repository.ItemRepository en memoria.
type ItemRepository struct {
	s *Store
}

var _ repository.ItemRepository = (*ItemRepository)(nil)

// Create registra un artículo; ErrDuplicate si el id ya existe.
func (r *ItemRepository) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ItemID]; ok {
		return domain.ErrDuplicate
	}
	copia := *item
	r.s.items[item.ItemID] = &copia
	return nil
}

// GetByID devuelve una copia del artículo o (nil, nil) si no existe.
func (r *ItemRepository) GetByID(itemID string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.itemCopy(itemID), nil
}

func (s *Store) itemCopy(itemID string) *entity.Item {
	item, ok := s.items[itemID]
	if !ok {
		return nil
	}
	copia := *item
	return &copia
}

// List filtra por tipo y ordena por etapa del pipeline y nombre.
func (r *ItemRepository) List(itemType entity.ItemType, order entity.ItemOrder) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		if itemType != "" && item.ItemType != itemType {
			continue
		}
		copia := *item
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].ItemType.PipelineRank(), out[j].ItemType.PipelineRank()
		if ri != rj {
			if order == entity.OrderDownstreamFirst {
				return ri > rj
			}
			return ri < rj
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}

// Search subcadena en id o nombre, case-insensitive.
func (r *ItemRepository) Search(query string) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q := strings.ToLower(query)
	var out []*entity.Item
	for _, item := range r.s.items {
		if strings.Contains(strings.ToLower(item.ItemID), q) ||
			strings.Contains(strings.ToLower(item.ItemName), q) {
			copia := *item
			out = append(out, &copia)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

// CountByType conteo por etapa.
func (r *ItemRepository) CountByType() (map[entity.ItemType]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make(map[entity.ItemType]int)
	for _, item := range r.s.items {
		out[item.ItemType]++
	}
	return out, nil
}
