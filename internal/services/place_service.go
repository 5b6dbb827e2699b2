package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"staymart/internal/caching"
	"staymart/internal/models"
	"staymart/internal/repositories"

	"github.com/google/uuid"
)

const activeFeedTTL = time.Minute

// PlaceInput carries the mutable listing fields. The request keys match the
// legacy API (addedPhotos).
type PlaceInput struct {
	Title        string   `json:"title"`
	Address      string   `json:"address"`
	AddedPhotos  []string `json:"addedPhotos"`
	Description  string   `json:"description"`
	Perks        []string `json:"perks"`
	ExtraInfo    string   `json:"extraInfo"`
	MaxGuests    *int     `json:"maxGuests"`
	Price        *float64 `json:"price"`
	PropertyType string   `json:"propertyType"`
}

type PlaceService interface {
	Add(ctx context.Context, ownerID uuid.UUID, in *PlaceInput) (*models.Place, error)
	UserPlaces(ctx context.Context, ownerID uuid.UUID) ([]*models.Place, error)
	Update(ctx context.Context, callerID, placeID uuid.UUID, in *PlaceInput) (*models.Place, error)
	Active(ctx context.Context) ([]*models.Place, error)
	PendingWithOwners(ctx context.Context) ([]*models.PendingPlace, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Place, error)
	Search(ctx context.Context, keyword string) ([]*models.Place, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, callerID, id uuid.UUID) error
}

type placeService struct {
	places repositories.PlaceRepository
	cache  caching.CacheService
}

func NewPlaceService(places repositories.PlaceRepository, cache caching.CacheService) PlaceService {
	return &placeService{places: places, cache: cache}
}

func (s *placeService) invalidateFeed(ctx context.Context) {
	if err := s.cache.InvalidateActivePlaces(ctx); err != nil {
		log.Printf("WARN: failed to invalidate active-places cache: %v", err)
	}
}

func (s *placeService) Add(ctx context.Context, ownerID uuid.UUID, in *PlaceInput) (*models.Place, error) {
	if in.Title == "" || in.Address == "" {
		return nil, fmt.Errorf("%w: title and address are required", ErrValidation)
	}
	propertyType := in.PropertyType
	if !models.ValidPropertyType(propertyType) {
		propertyType = models.DefaultPropertyType
	}

	place := &models.Place{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        in.Title,
		Address:      in.Address,
		Photos:       in.AddedPhotos,
		Description:  optional(in.Description),
		Perks:        in.Perks,
		ExtraInfo:    optional(in.ExtraInfo),
		MaxGuests:    in.MaxGuests,
		Price:        in.Price,
		PropertyType: propertyType,
		IsActive:     models.PlacePending,
	}

	if err := s.places.Create(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *placeService) UserPlaces(ctx context.Context, ownerID uuid.UUID) ([]*models.Place, error) {
	return s.places.ListByOwner(ctx, ownerID)
}

// Update overwrites the mutable fields of a listing. Only the owner may
// edit; anyone else gets an explicit forbidden error. An omitted or invalid
// property type preserves the stored one.
func (s *placeService) Update(ctx context.Context, callerID, placeID uuid.UUID, in *PlaceInput) (*models.Place, error) {
	place, err := s.places.GetByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place.OwnerID != callerID {
		return nil, ErrForbidden
	}

	place.Title = in.Title
	place.Address = in.Address
	place.Photos = in.AddedPhotos
	place.Description = optional(in.Description)
	place.Perks = in.Perks
	place.ExtraInfo = optional(in.ExtraInfo)
	place.MaxGuests = in.MaxGuests
	place.Price = in.Price
	if models.ValidPropertyType(in.PropertyType) {
		place.PropertyType = in.PropertyType
	}

	if err := s.places.Update(ctx, place); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return place, nil
}

// Active returns the public feed of approved listings, served from cache
// when warm.
func (s *placeService) Active(ctx context.Context) ([]*models.Place, error) {
	cached, err := s.cache.GetActivePlaces(ctx)
	if err != nil {
		log.Printf("WARN: active-places cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	places, err := s.places.ListByActivity(ctx, models.PlaceActive)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetActivePlaces(ctx, places, activeFeedTTL); err != nil {
		log.Printf("WARN: active-places cache write failed: %v", err)
	}
	return places, nil
}

func (s *placeService) PendingWithOwners(ctx context.Context) ([]*models.PendingPlace, error) {
	return s.places.ListPendingWithOwner(ctx)
}

func (s *placeService) Get(ctx context.Context, id uuid.UUID) (*models.Place, error) {
	return s.places.GetByID(ctx, id)
}

// Search returns every place for an empty keyword, active or not, matching
// the legacy contract the frontend depends on.
func (s *placeService) Search(ctx context.Context, keyword string) ([]*models.Place, error) {
	if keyword == "" {
		return s.places.ListAll(ctx)
	}
	return s.places.SearchByAddress(ctx, keyword)
}

// Activate approves a pending listing. Setting an already-active place
// active again is a no-op, so the call is idempotent.
func (s *placeService) Activate(ctx context.Context, id uuid.UUID) error {
	if err := s.places.SetActive(ctx, id, models.PlaceActive); err != nil {
		return err
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *placeService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if place.OwnerID != callerID {
		return ErrForbidden
	}
	if err := s.places.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFeed(ctx)
	return nil
}
