package domain

import "strings"

// Classification is the ledger bucket of an entry: ingreso adds to the
// balance, gasto and egreso subtract from it.
type Classification string

const (
	ClassificationIngreso Classification = "ingreso"
	ClassificationGasto   Classification = "gasto"
	ClassificationEgreso  Classification = "egreso"
)

// Classifications returns the buckets in canonical display order.
func Classifications() []Classification {
	return []Classification{ClassificationIngreso, ClassificationGasto, ClassificationEgreso}
}

// Valid reports whether c is a known classification.
func (c Classification) Valid() bool {
	return c == ClassificationIngreso || c == ClassificationGasto || c == ClassificationEgreso
}

// ClassificationForCategory maps a catalog category to its classification.
func ClassificationForCategory(category Category) Classification {
	switch category {
	case CategoryIngreso:
		return ClassificationIngreso
	case CategoryGasto:
		return ClassificationGasto
	default:
		return ClassificationEgreso
	}
}

// Reserved type references used for synthesized adjustment entries. They are
// not catalog entries; the name heuristic below classifies them.
const (
	AdjustmentTypeOverage  = "ajuste_sobrante"
	AdjustmentTypeShortage = "ajuste_faltante"
)

// NameHeuristic is the fallback classification table applied when an entry
// references a type id that is unknown or was deleted from the catalog.
// Anything matching neither set classifies as egreso.
type NameHeuristic struct {
	Ingreso map[string]struct{}
	Gasto   map[string]struct{}
}

// DefaultNameHeuristic returns the table of legacy type names observed in
// historical data.
func DefaultNameHeuristic() NameHeuristic {
	return NameHeuristic{
		Ingreso: nameSet(
			"venta", "ventas", "ingreso", "ingresos", "deposito", "depósito",
			"abono", "sobrante", AdjustmentTypeOverage,
		),
		Gasto: nameSet(
			"compra", "compras", "gasto", "gastos", "pago", "pagos",
			"planilla", "salarios", "servicios", "alquiler", "proveedores",
		),
	}
}

func nameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[normalizeTypeName(name)] = struct{}{}
	}
	return set
}

func normalizeTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Classifier resolves entry classifications against a catalog snapshot with
// the name heuristic as second tier. All lookups are total: an unknown or
// orphaned type id never fails, it degrades to the heuristic and finally to
// egreso.
type Classifier struct {
	byID      map[string]*MovementTypeConfig
	heuristic NameHeuristic
}

// NewClassifier builds a Classifier over a catalog snapshot.
func NewClassifier(types []*MovementTypeConfig, heuristic NameHeuristic) *Classifier {
	byID := make(map[string]*MovementTypeConfig, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}
	return &Classifier{byID: byID, heuristic: heuristic}
}

// ClassifyTypeID resolves the classification of a type reference.
func (c *Classifier) ClassifyTypeID(typeID string) Classification {
	if t, ok := c.byID[typeID]; ok {
		return ClassificationForCategory(t.Category)
	}
	name := normalizeTypeName(typeID)
	if _, ok := c.heuristic.Ingreso[name]; ok {
		return ClassificationIngreso
	}
	if _, ok := c.heuristic.Gasto[name]; ok {
		return ClassificationGasto
	}
	return ClassificationEgreso
}

// Classify resolves the classification of an entry via its type.
func (c *Classifier) Classify(entry *MovementEntry) Classification {
	return c.ClassifyTypeID(entry.MovementTypeID)
}

// IsIngresoType reports whether the type reference classifies as ingreso.
func (c *Classifier) IsIngresoType(typeID string) bool {
	return c.ClassifyTypeID(typeID) == ClassificationIngreso
}

// IsGastoType reports whether the type reference classifies as gasto.
func (c *Classifier) IsGastoType(typeID string) bool {
	return c.ClassifyTypeID(typeID) == ClassificationGasto
}

// TypeLabel returns the catalog name for a type reference, or the reference
// itself for orphaned entries.
func (c *Classifier) TypeLabel(typeID string) string {
	if t, ok := c.byID[typeID]; ok {
		return t.Name
	}
	return typeID
}
