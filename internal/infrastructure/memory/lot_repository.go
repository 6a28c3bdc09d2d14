package memory

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// LotRepository implementa repository.LotRepository en memoria.
type LotRepository struct {
	s *Store
}

var _ repository.LotRepository = (*LotRepository)(nil)

// Create inserta un lote; ErrDuplicate si el id ya existe.
func (r *LotRepository) Create(lot *entity.Lot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lots[lot.LotID]; ok {
		return domain.ErrDuplicate
	}
	copia := *lot
	if copia.CreatedAt.IsZero() {
		copia.CreatedAt = time.Now()
	}
	r.s.lots[lot.LotID] = &copia
	return nil
}

// GetByID detalle con nombres resueltos o (nil, nil).
func (r *LotRepository) GetByID(lotID string) (*entity.LotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.lotDetail(lotID), nil
}

func (s *Store) lotDetail(lotID string) *entity.LotDetail {
	lot, ok := s.lots[lotID]
	if !ok {
		return nil
	}
	detail := &entity.LotDetail{Lot: *lot}
	if item, ok := s.items[lot.ItemID]; ok {
		detail.ItemName = item.ItemName
		detail.ItemType = item.ItemType
		detail.UnitOfMeasure = item.UnitOfMeasure
	}
	if step, ok := s.processes[lot.ProcessCode]; ok {
		detail.ProcessName = step.ProcessName
		detail.ProcessLevel = step.ProcessLevel
	}
	if grade, ok := s.grades[lot.QualityGrade]; ok {
		detail.GradeName = grade.GradeName
	}
	return detail
}

// GetForUpdate copia del lote; el mutex del store hace de lock de fila.
func (r *LotRepository) GetForUpdate(lotID string) (*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[lotID]
	if !ok {
		return nil, nil
	}
	copia := *lot
	return &copia, nil
}

// UpdateQuantityStatus escribe saldo y estado.
func (r *LotRepository) UpdateQuantityStatus(lotID string, quantity decimal.Decimal, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	lot.CurrentQuantity = quantity
	lot.LotStatus = status
	return nil
}

// ListByItem lotes de un artículo, producción más reciente primero.
func (r *LotRepository) ListByItem(itemID, status string) ([]*entity.LotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*entity.LotDetail
	for id, lot := range r.s.lots {
		if lot.ItemID != itemID {
			continue
		}
		if status != "" && lot.LotStatus != status {
			continue
		}
		out = append(out, r.s.lotDetail(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ProductionDate.Equal(out[j].ProductionDate) {
			return out[i].ProductionDate.After(out[j].ProductionDate)
		}
		return out[i].LotID > out[j].LotID
	})
	return out, nil
}

// ListAll lotes más recientes por creación, hasta limit.
func (r *LotRepository) ListAll(limit int) ([]*entity.LotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*entity.LotDetail, 0, len(r.s.lots))
	for id := range r.s.lots {
		out = append(out, r.s.lotDetail(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].LotID > out[j].LotID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LockIDPrefix no-op: el mutex del store ya serializa todo el backend.
func (r *LotRepository) LockIDPrefix(string) error { return nil }

// MaxSequence mayor sufijo de 3 dígitos entre los lot_id con el prefijo.
func (r *LotRepository) MaxSequence(prefix string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	max := 0
	for id := range r.s.lots {
		if !strings.HasPrefix(id, prefix) || len(id) < 3 {
			continue
		}
		if n, err := strconv.Atoi(id[len(id)-3:]); err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

// ConsumptionCandidates lotes activos con saldo en procesos aguas abajo.
func (r *LotRepository) ConsumptionCandidates(processCode string) ([]*entity.LotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	step, ok := r.s.processes[processCode]
	if !ok {
		return nil, domain.ErrUnknownProcess
	}

	var out []*entity.LotDetail
	for id, lot := range r.s.lots {
		if lot.LotStatus != entity.LotStatusActive || !lot.CurrentQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		lotStep, ok := r.s.processes[lot.ProcessCode]
		if !ok || lotStep.ProcessLevel <= step.ProcessLevel {
			continue
		}
		out = append(out, r.s.lotDetail(id))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProcessLevel != out[j].ProcessLevel {
			return out[i].ProcessLevel < out[j].ProcessLevel
		}
		if !out[i].ProductionDate.Equal(out[j].ProductionDate) {
			return out[i].ProductionDate.After(out[j].ProductionDate)
		}
		return out[i].LotID < out[j].LotID
	})
	return out, nil
}
