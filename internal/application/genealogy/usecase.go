package genealogy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/application/lots"
	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// DefaultMaxDepth tope de profundidad del recorrido de genealogía. La
// genealogía es lógicamente un DAG, pero los datos de planta pueden traer
// errores de captura; el tope y el set de visitados cortan cualquier ciclo.
const DefaultMaxDepth = 10

// UseCase casos de uso del grafo de genealogía: consumo atómico lote→lote y
// recorridos de trazabilidad hacia adelante y hacia atrás.
type UseCase struct {
	txRunner  lots.TxRunner
	lots      repository.LotRepository
	genealogy repository.GenealogyRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner lots.TxRunner, lotRepo repository.LotRepository, genealogyRepo repository.GenealogyRepository) *UseCase {
	return &UseCase{txRunner: txRunner, lots: lotRepo, genealogy: genealogyRepo}
}

// ConsumeInput entrada para registrar un consumo: ConsumedQuantity unidades
// del lote hijo se incorporan al lote padre.
type ConsumeInput struct {
	ParentLotID      string
	ChildLotID       string
	ConsumedQuantity decimal.Decimal
	UsageType        string    // vacío = "Main Material"
	ConsumptionDate  time.Time // cero = ahora
	Notes            string
}

// Consume registra una arista de genealogía. En una sola transacción de BD:
// lee el saldo del hijo bajo lock, calcula el porcentaje de consumo, inserta
// la arista, escribe la transacción CONSUMPTION y descuenta el saldo.
// Un consumo mayor al saldo se rechaza con ErrInsufficientQuantity; saldo
// cero tras el consumo cierra el lote (estado consumed).
func (uc *UseCase) Consume(ctx context.Context, in ConsumeInput) error {
	if in.ParentLotID == "" || in.ChildLotID == "" {
		return domain.ErrInvalidInput
	}
	if in.ParentLotID == in.ChildLotID {
		return fmt.Errorf("%w: un lote no puede consumirse a sí mismo", domain.ErrInvalidInput)
	}
	if !in.ConsumedQuantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad consumida debe ser positiva", domain.ErrInvalidInput)
	}

	usage := in.UsageType
	if usage == "" {
		usage = "Main Material"
	}
	consumptionDate := in.ConsumptionDate
	if consumptionDate.IsZero() {
		consumptionDate = time.Now()
	}

	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		genealogyRepo repository.GenealogyRepository,
		txnRepo repository.InventoryTransactionRepository,
	) error {
		parent, err := lotRepo.GetForUpdate(in.ParentLotID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("lote padre %s: %w", in.ParentLotID, domain.ErrNotFound)
		}

		child, err := lotRepo.GetForUpdate(in.ChildLotID)
		if err != nil {
			return err
		}
		if child == nil {
			return fmt.Errorf("lote hijo %s: %w", in.ChildLotID, domain.ErrNotFound)
		}
		if !child.Active() {
			return domain.ErrLotClosed
		}

		balance := child.CurrentQuantity
		if in.ConsumedQuantity.GreaterThan(balance) {
			return domain.ErrInsufficientQuantity
		}

		// Porcentaje del saldo al momento del consumo; se guarda una vez y
		// no se recalcula.
		rate := decimal.Zero
		if !balance.IsZero() {
			rate = in.ConsumedQuantity.Div(balance).Mul(decimal.NewFromInt(100))
		}

		now := time.Now()
		if err := genealogyRepo.Create(&entity.LotGenealogy{
			ParentLotID:      in.ParentLotID,
			ChildLotID:       in.ChildLotID,
			ConsumedQuantity: in.ConsumedQuantity,
			ConsumptionRate:  rate,
			ProcessCode:      parent.ProcessCode,
			ConsumptionDate:  consumptionDate,
			UsageType:        usage,
			Notes:            in.Notes,
			CreatedAt:        now,
		}); err != nil {
			return err
		}

		after := balance.Sub(in.ConsumedQuantity)
		if err := txnRepo.Create(&entity.InventoryTransaction{
			ID:              uuid.New().String(),
			LotID:           in.ChildLotID,
			TransactionType: entity.TransactionConsumption,
			QuantityBefore:  balance,
			QuantityChange:  in.ConsumedQuantity.Neg(),
			QuantityAfter:   after,
			TransactionDate: consumptionDate,
			Notes:           fmt.Sprintf("consumido en lote %s (%s)", in.ParentLotID, usage),
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		status := entity.LotStatusActive
		if after.IsZero() {
			status = entity.LotStatusConsumed
		}
		return lotRepo.UpdateQuantityStatus(in.ChildLotID, after, status)
	})
}

// Traverse construye el árbol de trazabilidad de un lote.
// forward: a dónde fue el material (aristas donde el lote es hijo, hacia el
// padre). backward: qué se consumió para fabricarlo (aristas donde el lote es
// padre, hacia el hijo). El set de visitados se copia por rama, igual que el
// tope de profundidad: un lote repetido en el mismo camino trunca esa rama.
func (uc *UseCase) Traverse(lotID string, direction entity.TraceDirection, maxDepth int) (*entity.GenealogyNode, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", domain.ErrInvalidInput, direction)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	root, err := uc.build(lotID, direction, map[string]bool{}, 0, maxDepth)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}
	return root, nil
}

func (uc *UseCase) build(lotID string, direction entity.TraceDirection, visited map[string]bool, depth, maxDepth int) (*entity.GenealogyNode, error) {
	if visited[lotID] || depth >= maxDepth {
		return nil, nil
	}
	visited[lotID] = true

	lot, err := uc.lots.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}

	var edges []*entity.LotGenealogy
	if direction == entity.TraceForward {
		edges, err = uc.genealogy.ByChild(lotID)
	} else {
		edges, err = uc.genealogy.ByParent(lotID)
	}
	if err != nil {
		return nil, err
	}

	node := &entity.GenealogyNode{Lot: lot, Related: []*entity.GenealogyNode{}}
	for _, edge := range edges {
		next := edge.ParentLotID
		if direction == entity.TraceBackward {
			next = edge.ChildLotID
		}
		sub, err := uc.build(next, direction, copyVisited(visited), depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			continue
		}
		sub.ConsumedQuantity = edge.ConsumedQuantity
		sub.ConsumptionRate = edge.ConsumptionRate
		sub.UsageType = edge.UsageType
		node.Related = append(node.Related, sub)
	}
	return node, nil
}

// copyVisited copia el set para que las ramas hermanas no se corten entre sí.
func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited))
	for k := range visited {
		out[k] = true
	}
	return out
}

// Candidates lotes padre admisibles para consumir el lote dado: activos, con
// saldo, y de un proceso con nivel estrictamente mayor (más aguas abajo).
func (uc *UseCase) Candidates(childLotID string) ([]*entity.LotDetail, error) {
	child, err := uc.lots.GetByID(childLotID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}
	return uc.lots.ConsumptionCandidates(child.ProcessCode)
}

// Inputs materiales consumidos por un lote (aristas donde es padre), con el
// lote hijo resuelto.
func (uc *UseCase) Inputs(lotID string) ([]*entity.GenealogyLink, error) {
	if _, err := uc.requireLot(lotID); err != nil {
		return nil, err
	}
	edges, err := uc.genealogy.ByParent(lotID)
	if err != nil {
		return nil, err
	}
	return uc.resolveLinks(edges, entity.TraceBackward)
}

// Outputs destinos del material de un lote (aristas donde es hijo), con el
// lote padre resuelto.
func (uc *UseCase) Outputs(lotID string) ([]*entity.GenealogyLink, error) {
	if _, err := uc.requireLot(lotID); err != nil {
		return nil, err
	}
	edges, err := uc.genealogy.ByChild(lotID)
	if err != nil {
		return nil, err
	}
	return uc.resolveLinks(edges, entity.TraceForward)
}

func (uc *UseCase) requireLot(lotID string) (*entity.LotDetail, error) {
	lot, err := uc.lots.GetByID(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return lot, nil
}

func (uc *UseCase) resolveLinks(edges []*entity.LotGenealogy, direction entity.TraceDirection) ([]*entity.GenealogyLink, error) {
	links := make([]*entity.GenealogyLink, 0, len(edges))
	for _, edge := range edges {
		counterpartID := edge.ParentLotID
		if direction == entity.TraceBackward {
			counterpartID = edge.ChildLotID
		}
		counterpart, err := uc.lots.GetByID(counterpartID)
		if err != nil {
			return nil, err
		}
		links = append(links, &entity.GenealogyLink{LotGenealogy: *edge, Counterpart: counterpart})
	}
	return links, nil
}
