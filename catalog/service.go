// Package catalog mediates between the live menu repository and the
// static fallback document, keeping the read path always available.
package catalog

import (
	"errors"
	"fmt"
	"log"

	"hungerhub/fallback"
	"hungerhub/models"
	"hungerhub/repository"
)

// ErrFallbackMissing is returned by seeding when the fallback document
// cannot be located or parsed.
var ErrFallbackMissing = fallback.ErrMissing

// ServiceError wraps an unexpected failure from the repository so the API
// boundary can surface the actual cause.
type ServiceError struct {
	Op    string
	Cause error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("menu service: %s: %v", e.Op, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// Source tags which store answered a catalog read.
type Source int

const (
	SourceRepository Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "repository"
}

// MenuStore is the slice of the repository the service needs. Satisfied
// by *repository.MenuRepository.
type MenuStore interface {
	List() ([]models.MenuItem, error)
	Create(input models.MenuItemInput) (*models.MenuItem, error)
	UpdateByID(id uint, update models.MenuItemUpdate) (*models.MenuItem, error)
	DeleteByID(id uint) error
	DeleteAll() error
	InsertMany(items []models.MenuItem) (int, error)
}

// Service is stateless between calls; every read re-evaluates repository
// availability.
type Service struct {
	store    MenuStore
	fallback *fallback.Store
}

func NewService(store MenuStore, fb *fallback.Store) *Service {
	return &Service{store: store, fallback: fb}
}

// Catalog resolves the current menu: the repository when it has records,
// otherwise the fallback document, otherwise an empty list. It never
// fails; an empty catalog is a valid, renderable state.
func (s *Service) Catalog() ([]models.MenuItem, Source) {
	items, err := s.store.List()
	if err == nil && len(items) > 0 {
		return items, SourceRepository
	}
	if err != nil {
		log.Println("catalog: repository read failed, using fallback:", err)
	}

	fbItems, err := s.fallback.Items()
	if err != nil {
		log.Println("catalog: fallback unavailable:", err)
		return []models.MenuItem{}, SourceFallback
	}
	if fbItems == nil {
		fbItems = []models.MenuItem{}
	}
	return fbItems, SourceFallback
}

// CreateItem writes to the live repository only; there is no fallback for
// writes. Validation failures pass through untouched.
func (s *Service) CreateItem(input models.MenuItemInput) (*models.MenuItem, error) {
	item, err := s.store.Create(input)
	if err != nil {
		if errors.Is(err, repository.ErrValidation) {
			return nil, err
		}
		return nil, &ServiceError{Op: "create", Cause: err}
	}
	return item, nil
}

func (s *Service) UpdateItem(id uint, update models.MenuItemUpdate) (*models.MenuItem, error) {
	item, err := s.store.UpdateByID(id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrValidation) {
			return nil, err
		}
		return nil, &ServiceError{Op: "update", Cause: err}
	}
	return item, nil
}

func (s *Service) DeleteItem(id uint) error {
	if err := s.store.DeleteByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return &ServiceError{Op: "delete", Cause: err}
	}
	return nil
}

// SeedFromFallback clears the repository and repopulates it from the
// fallback document, returning the inserted count. The clear and the
// insert are separate store operations; a read arriving between them can
// observe a partially seeded collection. Run it without concurrent
// traffic.
func (s *Service) SeedFromFallback() (int, error) {
	items, err := s.fallback.Items()
	if err != nil {
		return 0, err
	}

	if err := s.store.DeleteAll(); err != nil {
		return 0, &ServiceError{Op: "seed clear", Cause: err}
	}
	n, err := s.store.InsertMany(items)
	if err != nil {
		return 0, &ServiceError{Op: "seed insert", Cause: err}
	}
	log.Println("catalog: seeded menu items, count =", n)
	return n, nil
}
