package bom

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// DefaultMaxDepth tope de profundidad de la expansión. Es una red de
// seguridad frente a datos cíclicos heredados; la prevención real de ciclos
// ocurre al insertar aristas.
const DefaultMaxDepth = 10

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de artículos y BOM atados a esa tx. La validación de ciclo y
// el insert de la arista deben ver el mismo snapshot.
type TxRunner interface {
	RunBOM(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		bomRepo repository.BOMRepository,
	) error) error
}

// UseCase casos de uso del grafo BOM: inserción validada de aristas y
// expansión multinivel.
type UseCase struct {
	txRunner TxRunner
	items    repository.ItemRepository
	boms     repository.BOMRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, items repository.ItemRepository, boms repository.BOMRepository) *UseCase {
	return &UseCase{txRunner: txRunner, items: items, boms: boms}
}

// AddComponentInput entrada para agregar una arista al BOM.
type AddComponentInput struct {
	ParentItemID    string
	ComponentItemID string
	Quantity        decimal.Decimal
	UsageType       string
}

// AddComponent valida e inserta una arista padre→componente.
// Rechaza autorreferencias, extremos inexistentes, duplicados y aristas que
// introducirían un ciclo (el padre alcanzable desde el componente).
func (uc *UseCase) AddComponent(ctx context.Context, in AddComponentInput) error {
	if in.ParentItemID == "" || in.ComponentItemID == "" || in.UsageType == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.ParentItemID == in.ComponentItemID {
		return domain.ErrSelfReference
	}

	// Validaciones y escritura en la misma transacción para que dos
	// inserciones concurrentes no puedan producir un ciclo entre ambas.
	return uc.txRunner.RunBOM(ctx, func(
		itemRepo repository.ItemRepository,
		bomRepo repository.BOMRepository,
	) error {
		parent, err := itemRepo.GetByID(in.ParentItemID)
		if err != nil {
			return err
		}
		component, err := itemRepo.GetByID(in.ComponentItemID)
		if err != nil {
			return err
		}
		if parent == nil || component == nil {
			return domain.ErrNotFound
		}

		cyclic, err := reachable(bomRepo, in.ComponentItemID, in.ParentItemID)
		if err != nil {
			return err
		}
		if cyclic {
			return domain.ErrCyclicReference
		}

		return bomRepo.AddComponent(&entity.BOMComponent{
			ParentItemID:    in.ParentItemID,
			ComponentItemID: in.ComponentItemID,
			Quantity:        in.Quantity,
			UsageType:       in.UsageType,
		})
	})
}

// reachable indica si target es alcanzable desde start siguiendo aristas
// padre→componente (DFS iterativo sobre el grafo existente).
func reachable(bomRepo repository.BOMRepository, start, target string) (bool, error) {
	visited := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == target {
			return true, nil
		}
		edges, err := bomRepo.Components(current)
		if err != nil {
			return false, err
		}
		for _, e := range edges {
			if !visited[e.ComponentItemID] {
				visited[e.ComponentItemID] = true
				stack = append(stack, e.ComponentItemID)
			}
		}
	}
	return false, nil
}

// DirectComponents componentes de primer nivel de un padre, ordenados por rol
// y nombre.
func (uc *UseCase) DirectComponents(parentItemID string) ([]*entity.ComponentLine, error) {
	parent, err := uc.items.GetByID(parentItemID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	return uc.boms.DirectComponents(parentItemID)
}

// Expand expande el BOM multinivel desde rootItemID hasta maxDepth niveles
// (DefaultMaxDepth si maxDepth <= 0). La raíz inexistente es ErrNotFound;
// un componente con referencia rota hace caer solo su rama, no el árbol:
// una fila mala del maestro no debe dejar en blanco la vista completa.
func (uc *UseCase) Expand(rootItemID string, maxDepth int) (*entity.BOMNode, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	root, err := uc.expand(rootItemID, 0, maxDepth)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}
	return root, nil
}

// expand devuelve nil (sin error) para referencias rotas; la rama se descarta.
func (uc *UseCase) expand(itemID string, depth, maxDepth int) (*entity.BOMNode, error) {
	item, err := uc.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if depth >= maxDepth {
		return &entity.BOMNode{Item: item, Components: []*entity.BOMComponentNode{}}, nil
	}

	lines, err := uc.boms.DirectComponents(itemID)
	if err != nil {
		return nil, err
	}

	components := make([]*entity.BOMComponentNode, 0, len(lines))
	for _, line := range lines {
		if line.Item == nil {
			continue
		}
		sub, err := uc.expand(line.Item.ItemID, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			continue
		}
		components = append(components, &entity.BOMComponentNode{
			Quantity:   line.Quantity,
			UsageType:  line.UsageType,
			Item:       sub.Item,
			Components: sub.Components,
		})
	}

	return &entity.BOMNode{Item: item, Components: components}, nil
}
