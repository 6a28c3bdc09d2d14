// Package mirror expone el catálogo de artículos en modo espejo: las lecturas
// van primero al maestro de productos externo y caen a la BD local si el
// maestro no responde o no conoce el artículo. Las escrituras quedan
// deshabilitadas; el maestro externo es la fuente autoritativa.
package mirror

import (
	"github.com/jvargas/trazalote/internal/domain"
	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
	"github.com/jvargas/trazalote/pkg/logger"
)

var _ repository.ItemRepository = (*CatalogRepo)(nil)

// CatalogRepo ItemRepository read-through sobre el maestro externo.
type CatalogRepo struct {
	remote repository.ItemRepository
	local  repository.ItemRepository
	log    *logger.Logger
}

// NewCatalogRepository construye el catálogo espejo. remote lee del maestro
// externo; local es el repositorio PostgreSQL propio usado como fallback.
func NewCatalogRepository(remote, local repository.ItemRepository, log *logger.Logger) *CatalogRepo {
	return &CatalogRepo{remote: remote, local: local, log: log}
}

// Create rechaza la escritura: en modo espejo el catálogo es solo lectura.
func (r *CatalogRepo) Create(*entity.Item) error {
	return domain.ErrReadOnlyCatalog
}

// GetByID busca primero en el maestro; si falla o no existe, en la BD local.
func (r *CatalogRepo) GetByID(itemID string) (*entity.Item, error) {
	item, err := r.remote.GetByID(itemID)
	if err != nil {
		r.log.Warn().Err(err).Str("item_id", itemID).Msg("maestro externo no disponible, usando BD local")
		return r.local.GetByID(itemID)
	}
	if item == nil {
		return r.local.GetByID(itemID)
	}
	item.Source = entity.ItemSourceMirror
	return item, nil
}

// List lista desde el maestro; fallback a la BD local si el maestro falla.
func (r *CatalogRepo) List(itemType entity.ItemType, order entity.ItemOrder) ([]*entity.Item, error) {
	items, err := r.remote.List(itemType, order)
	if err != nil {
		r.log.Warn().Err(err).Msg("maestro externo no disponible, usando BD local")
		return r.local.List(itemType, order)
	}
	markMirror(items)
	return items, nil
}

// Search busca en el maestro; fallback a la BD local si el maestro falla.
func (r *CatalogRepo) Search(query string) ([]*entity.Item, error) {
	items, err := r.remote.Search(query)
	if err != nil {
		r.log.Warn().Err(err).Msg("maestro externo no disponible, usando BD local")
		return r.local.Search(query)
	}
	markMirror(items)
	return items, nil
}

// CountByType cuenta en el maestro; fallback a la BD local si el maestro falla.
func (r *CatalogRepo) CountByType() (map[entity.ItemType]int, error) {
	counts, err := r.remote.CountByType()
	if err != nil {
		r.log.Warn().Err(err).Msg("maestro externo no disponible, usando BD local")
		return r.local.CountByType()
	}
	return counts, nil
}

func markMirror(items []*entity.Item) {
	for _, item := range items {
		item.Source = entity.ItemSourceMirror
	}
}
