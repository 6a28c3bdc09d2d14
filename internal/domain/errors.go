package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrSelfReference        = errors.New("un artículo no puede ser componente de sí mismo")
	ErrCyclicReference      = errors.New("la relación introduciría un ciclo en el BOM")
	ErrUnknownProcess       = errors.New("código de proceso desconocido")
	ErrUnknownGrade         = errors.New("grado de calidad desconocido")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente en el lote")
	ErrLotClosed            = errors.New("el lote está en estado terminal")
	ErrReadOnlyCatalog      = errors.New("catálogo en modo espejo: solo lectura")
)
