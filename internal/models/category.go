package models

// Category is static reference data: a fixed enumeration of recipe categories
// mapped to a numeric id (storage) and a short prefix (recipe-id display).
// Rows are seeded at migration time and never user-mutable.
type Category struct {
	ID     int    `gorm:"primary_key" json:"id"`
	Name   string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Prefix string `gorm:"size:10;not null" json:"prefix"`
}

// DefaultCategories returns the fixed category set the application ships with.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Desayunos", Prefix: "des"},
		{ID: 2, Name: "Almuerzos", Prefix: "alm"},
		{ID: 3, Name: "Cenas", Prefix: "cen"},
		{ID: 4, Name: "Postres", Prefix: "pos"},
		{ID: 5, Name: "Bebidas", Prefix: "beb"},
	}
}

// CategorySet is the category lookup injected into the recipe writer.
type CategorySet struct {
	byName map[string]Category
	byID   map[int]Category
}

// NewCategorySet builds a CategorySet from a slice of categories.
func NewCategorySet(categories []Category) *CategorySet {
	s := &CategorySet{
		byName: make(map[string]Category, len(categories)),
		byID:   make(map[int]Category, len(categories)),
	}
	for _, c := range categories {
		s.byName[c.Name] = c
		s.byID[c.ID] = c
	}
	return s
}

// ByName looks a category up by its display name.
func (s *CategorySet) ByName(name string) (Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// ByID looks a category up by its numeric id.
func (s *CategorySet) ByID(id int) (Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Difficulty levels a recipe may declare.
var Difficulties = []string{"Fácil", "Intermedio", "Difícil"}

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}
