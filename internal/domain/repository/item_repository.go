package repository

import "github.com/jvargas/trazalote/internal/domain/entity"

// ItemRepository puerto de persistencia del catálogo de artículos (DIP).
// GetByID devuelve (nil, nil) cuando el artículo no existe; el caso de uso
// decide si eso es un error.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(itemID string) (*entity.Item, error)
	// List filtra por tipo (cadena vacía = todos) y ordena por etapa del
	// pipeline en la dirección indicada, luego por nombre.
	List(itemType entity.ItemType, order entity.ItemOrder) ([]*entity.Item, error)
	// Search busca por subcadena en id o nombre (case-insensitive).
	Search(query string) ([]*entity.Item, error)
	CountByType() (map[entity.ItemType]int, error)
}
