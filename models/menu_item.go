package models

import "time"

// MenuItem is a single orderable dish on the public menu. Price is a
// display string, not a number: entries like "$8.99" or "from $5" are
// stored as typed by the admin.
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name" validate:"required"`
	Image       string    `json:"image"`
	Price       string    `json:"price"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Defaults for optional fields on newly created items.
const (
	DefaultLink     = "#"
	DefaultCategory = "general"
)

// MenuItemInput is the request body for creating a menu item.
type MenuItemInput struct {
	Name        string `json:"name" validate:"required"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// MenuItemUpdate carries the editable fields for an update. Nil fields
// keep their stored value; non-nil fields overwrite it.
type MenuItemUpdate struct {
	Name        *string `json:"name"`
	Image       *string `json:"image"`
	Price       *string `json:"price"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}
