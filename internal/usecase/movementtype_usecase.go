package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fondocore/fondo/internal/domain"
)

// RegistrySnapshot is an immutable view of one owner's movement type catalog.
// Version grows on every refresh so consumers can detect staleness and pull
// on demand instead of relying on a global change broadcast.
type RegistrySnapshot struct {
	OwnerID string
	Version int64
	Types   []*domain.MovementTypeConfig
}

// Classifier builds a classification engine over the snapshot.
func (s *RegistrySnapshot) Classifier() *domain.Classifier {
	return domain.NewClassifier(s.Types, domain.DefaultNameHeuristic())
}

// GroupedTypes is the catalog split by category, each group ordered by Order
// ascending.
type GroupedTypes struct {
	Ingreso []*domain.MovementTypeConfig
	Gasto   []*domain.MovementTypeConfig
	Egreso  []*domain.MovementTypeConfig
}

// Grouped splits the snapshot by category.
func (s *RegistrySnapshot) Grouped() GroupedTypes {
	var g GroupedTypes
	for _, t := range s.Types {
		switch t.Category {
		case domain.CategoryIngreso:
			g.Ingreso = append(g.Ingreso, t)
		case domain.CategoryGasto:
			g.Gasto = append(g.Gasto, t)
		default:
			g.Egreso = append(g.Egreso, t)
		}
	}
	return g
}

// MovementTypeUseCase is the movement type registry: an owner-scoped,
// ordered catalog with an explicit refresh/version-token cache.
type MovementTypeUseCase struct {
	typeRepo  MovementTypeRepository
	txManager TransactionManager
	idGen     IDGenerator

	mu        sync.RWMutex
	snapshots map[string]*RegistrySnapshot
}

// NewMovementTypeUseCase creates a new MovementTypeUseCase.
func NewMovementTypeUseCase(typeRepo MovementTypeRepository, txManager TransactionManager, idGen IDGenerator) *MovementTypeUseCase {
	return &MovementTypeUseCase{
		typeRepo:  typeRepo,
		txManager: txManager,
		idGen:     idGen,
		snapshots: make(map[string]*RegistrySnapshot),
	}
}

// Snapshot returns the cached catalog view for an owner, loading it on first
// use.
func (uc *MovementTypeUseCase) Snapshot(ctx context.Context, ownerID string) (*RegistrySnapshot, error) {
	uc.mu.RLock()
	snapshot, ok := uc.snapshots[ownerID]
	uc.mu.RUnlock()
	if ok {
		return snapshot, nil
	}
	return uc.Refresh(ctx, ownerID)
}

// Refresh reloads the owner's catalog from storage and bumps the version
// token.
func (uc *MovementTypeUseCase) Refresh(ctx context.Context, ownerID string) (*RegistrySnapshot, error) {
	types, err := uc.typeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sortTypes(types)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	version := int64(1)
	if prev, ok := uc.snapshots[ownerID]; ok {
		version = prev.Version + 1
	}
	snapshot := &RegistrySnapshot{OwnerID: ownerID, Version: version, Types: types}
	uc.snapshots[ownerID] = snapshot

	return snapshot, nil
}

// ListTypes returns the owner's catalog ordered by Order ascending.
func (uc *MovementTypeUseCase) ListTypes(ctx context.Context, ownerID string) ([]*domain.MovementTypeConfig, error) {
	snapshot, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return snapshot.Types, nil
}

// AddTypeInput represents input for adding a catalog entry.
type AddTypeInput struct {
	OwnerID  string
	Category domain.Category
	Name     string
}

// AddType appends a new movement type at the end of its category scope.
func (uc *MovementTypeUseCase) AddType(ctx context.Context, input AddTypeInput) (*domain.MovementTypeConfig, error) {
	if err := domain.ValidateTypeName(input.Name); err != nil {
		return nil, err
	}
	if !input.Category.Valid() {
		return nil, domain.NewValidationError("movement_type", "", "category", "unknown category")
	}

	siblings, err := uc.siblings(ctx, input.OwnerID, input.Category)
	if err != nil {
		return nil, err
	}
	maxOrder := 0
	for _, sibling := range siblings {
		if sibling.Order > maxOrder {
			maxOrder = sibling.Order
		}
	}

	config := &domain.MovementTypeConfig{
		ID:       uc.idGen.Generate(),
		OwnerID:  input.OwnerID,
		Category: input.Category,
		Name:     strings.TrimSpace(input.Name),
		Order:    maxOrder + 1,
	}

	if err := uc.typeRepo.Create(ctx, config); err != nil {
		return nil, err
	}

	if _, err := uc.Refresh(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	return config, nil
}

// Reorder swaps the type with its adjacent sibling in the same
// (owner, category) scope. Moving past either end is a no-op, not an error.
func (uc *MovementTypeUseCase) Reorder(ctx context.Context, id string, direction domain.ReorderDirection) error {
	if !direction.Valid() {
		return domain.NewValidationError("movement_type", id, "direction", "unknown direction")
	}

	config, err := uc.typeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	siblings, err := uc.siblings(ctx, config.OwnerID, config.Category)
	if err != nil {
		return err
	}

	index := -1
	for i, sibling := range siblings {
		if sibling.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return domain.NewNotFoundError("movement_type", id)
	}

	neighbor := index - 1
	if direction == domain.ReorderDown {
		neighbor = index + 1
	}
	if neighbor < 0 || neighbor >= len(siblings) {
		return nil
	}

	// Both rows move in one transaction so a crash cannot leave the scope
	// with a duplicated order.
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	current, other := siblings[index], siblings[neighbor]
	if err := uc.typeRepo.UpdateOrder(ctx, tx, current.ID, other.Order); err != nil {
		return err
	}
	if err := uc.typeRepo.UpdateOrder(ctx, tx, other.ID, current.Order); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	_, err = uc.Refresh(ctx, config.OwnerID)
	return err
}

// DeleteType removes the catalog entry only. Historical entries referencing
// it remain and fall back to the name heuristic.
func (uc *MovementTypeUseCase) DeleteType(ctx context.Context, id string) error {
	config, err := uc.typeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.typeRepo.Delete(ctx, id); err != nil {
		return err
	}

	_, err = uc.Refresh(ctx, config.OwnerID)
	return err
}

func (uc *MovementTypeUseCase) siblings(ctx context.Context, ownerID string, category domain.Category) ([]*domain.MovementTypeConfig, error) {
	types, err := uc.typeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var siblings []*domain.MovementTypeConfig
	for _, t := range types {
		if t.Category == category {
			siblings = append(siblings, t)
		}
	}
	sortTypes(siblings)
	return siblings, nil
}

func sortTypes(types []*domain.MovementTypeConfig) {
	sort.SliceStable(types, func(i, j int) bool {
		if types[i].Category != types[j].Category {
			return categoryRank(types[i].Category) < categoryRank(types[j].Category)
		}
		return types[i].Order < types[j].Order
	})
}

func categoryRank(category domain.Category) int {
	switch category {
	case domain.CategoryIngreso:
		return 0
	case domain.CategoryGasto:
		return 1
	default:
		return 2
	}
}
