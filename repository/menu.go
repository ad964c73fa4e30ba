package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hungerhub/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// MenuRepository is the persistent collection of menu items. All access
// goes through the injected gorm handle.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// List returns every menu item, newest first. Read failures are reported
// as ErrStoreUnavailable so the catalog service can fall back.
func (r *MenuRepository) List() ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0)
	if err := r.db.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return items, nil
}

// Create validates the candidate, applies defaults for the optional
// fields and persists it. The store assigns id and created_at.
func (r *MenuRepository) Create(input models.MenuItemInput) (*models.MenuItem, error) {
	item := models.MenuItem{
		Name:        strings.TrimSpace(input.Name),
		Image:       input.Image,
		Price:       input.Price,
		Link:        input.Link,
		Description: input.Description,
		Category:    input.Category,
	}
	if item.Link == "" {
		item.Link = models.DefaultLink
	}
	if item.Category == "" {
		item.Category = models.DefaultCategory
	}

	if err := validate.Struct(&item); err != nil {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := r.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return &item, nil
}

// UpdateByID overwrites the editable fields of the record matching id.
// Nil fields in the update keep their stored value; id and created_at are
// never touched.
func (r *MenuRepository) UpdateByID(id uint, update models.MenuItemUpdate) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load menu item %d: %w", id, err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		item.Name = name
	}
	if update.Image != nil {
		item.Image = *update.Image
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.Link != nil {
		item.Link = *update.Link
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Category != nil {
		item.Category = *update.Category
	}

	if err := r.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update menu item %d: %w", id, err)
	}
	return &item, nil
}

// DeleteByID removes the record matching id.
func (r *MenuRepository) DeleteByID(id uint) error {
	result := r.db.Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete menu item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: menu item %d", ErrNotFound, id)
	}
	return nil
}

// DeleteAll clears the whole collection. Used only by seeding.
func (r *MenuRepository) DeleteAll() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.MenuItem{}).Error; err != nil {
		return fmt.Errorf("clear menu items: %w", err)
	}
	return nil
}

// InsertMany bulk-inserts items, letting the store reassign ids and
// timestamps. Used only by seeding.
func (r *MenuRepository) InsertMany(items []models.MenuItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	fresh := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		item.ID = 0
		item.CreatedAt = time.Time{}
		item.Name = strings.TrimSpace(item.Name)
		if item.Link == "" {
			item.Link = models.DefaultLink
		}
		if item.Category == "" {
			item.Category = models.DefaultCategory
		}
		fresh = append(fresh, item)
	}

	if err := r.db.Create(&fresh).Error; err != nil {
		return 0, fmt.Errorf("insert menu items: %w", err)
	}
	return len(fresh), nil
}
