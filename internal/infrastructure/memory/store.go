// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa como backend de los tests unitarios del motor de grafos;
// no simula rollback (las validaciones de los casos de uso ocurren antes de
// cualquier escritura).
package memory

import (
	"context"
	"sync"

	"github.com/jvargas/trazalote/internal/domain/entity"
	"github.com/jvargas/trazalote/internal/domain/repository"
)

// Store estado compartido del backend en memoria. Cada puerto se expone como
// un repositorio propio sobre el mismo store, igual que los repositorios de
// PostgreSQL comparten el pool.
type Store struct {
	mu sync.Mutex

	items     map[string]*entity.Item
	bomEdges  []*entity.BOMComponent
	lots      map[string]*entity.Lot
	genealogy []*entity.LotGenealogy
	genSeq    int64
	txns      []*entity.InventoryTransaction
	processes map[string]*entity.ProcessStep
	grades    map[string]*entity.QualityGrade
}

// NewStore crea el backend con las tablas de referencia ya sembradas (los
// mismos datos que la migración siembra en PostgreSQL).
func NewStore() *Store {
	s := &Store{
		items:     make(map[string]*entity.Item),
		lots:      make(map[string]*entity.Lot),
		processes: make(map[string]*entity.ProcessStep),
		grades:    make(map[string]*entity.QualityGrade),
	}
	for _, p := range []entity.ProcessStep{
		{ProcessCode: "P", ProcessName: "Process", ProcessLevel: 1, AccuracyType: "standard"},
		{ProcessCode: "W", ProcessName: "Winding", ProcessLevel: 2, AccuracyType: "standard"},
		{ProcessCode: "B", ProcessName: "Braiding", ProcessLevel: 3, AccuracyType: "standard"},
		{ProcessCode: "S", ProcessName: "Spinning", ProcessLevel: 4, AccuracyType: "standard"},
		{ProcessCode: "C", ProcessName: "Coating", ProcessLevel: 5, AccuracyType: "standard"},
		{ProcessCode: "F", ProcessName: "Finishing", ProcessLevel: 6, AccuracyType: "standard"},
		{ProcessCode: "E", ProcessName: "End", ProcessLevel: 7, AccuracyType: "standard"},
	} {
		step := p
		s.processes[p.ProcessCode] = &step
	}
	for _, g := range []entity.QualityGrade{
		{GradeCode: "A", GradeName: "Grado A", ProcessingRule: "uso normal"},
		{GradeCode: "B", GradeName: "Grado B", ProcessingRule: "requiere inspección"},
		{GradeCode: "C", GradeName: "Grado C", ProcessingRule: "uso restringido"},
	} {
		grade := g
		s.grades[g.GradeCode] = &grade
	}
	return s
}

// Items repositorio de artículos sobre el store.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// BOM repositorio del grafo BOM sobre el store.
func (s *Store) BOM() *BOMRepository { return &BOMRepository{s: s} }

// Lots repositorio del libro de lotes sobre el store.
func (s *Store) Lots() *LotRepository { return &LotRepository{s: s} }

// Genealogy repositorio del grafo de genealogía sobre el store.
func (s *Store) Genealogy() *GenealogyRepository { return &GenealogyRepository{s: s} }

// Transactions repositorio del libro de inventario sobre el store.
func (s *Store) Transactions() *InventoryTransactionRepository {
	return &InventoryTransactionRepository{s: s}
}

// References repositorio de tablas de referencia sobre el store.
func (s *Store) References() *ReferenceRepository { return &ReferenceRepository{s: s} }

// TxRunner en memoria: ejecuta fn con los repositorios del propio store.
// Sin transacción real; válido para tests.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repositorios de lotes, genealogía e inventario.
func (r *TxRunner) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	genealogyRepo repository.GenealogyRepository,
	txnRepo repository.InventoryTransactionRepository,
) error) error {
	return fn(r.store.Lots(), r.store.Genealogy(), r.store.Transactions())
}

// RunBOM ejecuta fn con los repositorios de artículos y BOM.
func (r *TxRunner) RunBOM(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	bomRepo repository.BOMRepository,
) error) error {
	return fn(r.store.Items(), r.store.BOM())
}
