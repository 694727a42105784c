package domain

// Category groups movement types into the three classification buckets.
type Category string

const (
	CategoryIngreso Category = "INGRESO"
	CategoryGasto   Category = "GASTO"
	CategoryEgreso  Category = "EGRESO"
)

// Categories returns all categories in classification order.
func Categories() []Category {
	return []Category{CategoryIngreso, CategoryGasto, CategoryEgreso}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryIngreso || c == CategoryGasto || c == CategoryEgreso
}

// MovementTypeConfig is one entry of the owner-scoped movement type catalog.
// Order is unique within an (owner, category) scope and drives display order.
type MovementTypeConfig struct {
	ID       string
	OwnerID  string
	Category Category
	Name     string
	Order    int
}

// ReorderDirection moves a type one position within its siblings.
type ReorderDirection string

const (
	ReorderUp   ReorderDirection = "up"
	ReorderDown ReorderDirection = "down"
)

// Valid reports whether d is a known direction.
func (d ReorderDirection) Valid() bool {
	return d == ReorderUp || d == ReorderDown
}
