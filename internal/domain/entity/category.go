package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryTheme is the default colour for categories.
const DefaultCategoryTheme = "#000000"

var hexThemePattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsValidTheme reports whether theme is a #RGB or #RRGGBB colour.
func IsValidTheme(theme string) bool {
	return hexThemePattern.MatchString(theme)
}

// Category represents a globally unique transaction category label.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	Icon        string
	Theme       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new active Category entity.
func NewCategory(name, description, icon, theme string, now time.Time) *Category {
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Icon:        icon,
		Theme:       theme,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
