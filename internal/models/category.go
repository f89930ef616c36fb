package models

import "golang.org/x/text/cases"

// Category groups products. Names are unique ignoring case.
type Category struct {
	ID      int64  `json:"category_id" gorm:"column:category_id;primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"type:varchar(100);not null"`
	// NameKey is the case-folded Name and carries the uniqueness constraint.
	NameKey string `json:"-" gorm:"column:name_key;type:varchar(400);not null;uniqueIndex:ux_categories_name_key"`
}

// CategoryNameKey returns the Unicode case-folded form of name.
func CategoryNameKey(name string) string {
	return cases.Fold().String(name)
}

func (Category) TableName() string {
	return "categories"
}

// CategoryInput is the body of create and full-replace requests.
type CategoryInput struct {
	Name string `json:"name" validate:"notblank,min=3,max=100"`
}

// Normalize trims surrounding whitespace from every field.
func (in *CategoryInput) Normalize() {
	in.Name = trim(in.Name)
}

// CategoryPatch is the body of partial update requests.
type CategoryPatch struct {
	Name *string `json:"name" validate:"omitempty,notblank,min=3,max=100"`
}

func (in *CategoryPatch) Normalize() {
	in.Name = trimPtr(in.Name)
}

// Empty reports whether no field was provided.
func (in CategoryPatch) Empty() bool {
	return in.Name == nil
}
