package handlers

import (
	"net/http"

	"staymart/internal/common"
	"staymart/internal/models"
	"staymart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PlaceHandlers handles listing CRUD, the public feed and the admin
// approval queue.
type PlaceHandlers struct {
	places services.PlaceService
}

func NewPlaceHandlers(places services.PlaceService) *PlaceHandlers {
	return &PlaceHandlers{places: places}
}

// AddPlace creates a listing owned by the caller; it starts pending until
// an admin approves it.
func (h *PlaceHandlers) AddPlace(c echo.Context) error {
	ownerID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var in services.PlaceInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	place, err := h.places.Add(ctx, ownerID, &in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"place": place})
}

// UserPlaces lists the caller's own listings regardless of approval state.
func (h *PlaceHandlers) UserPlaces(c echo.Context) error {
	ownerID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	places, err := h.places.UserPlaces(ctx, ownerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, places)
}

type updatePlaceRequest struct {
	ID string `json:"id"`
	services.PlaceInput
}

// UpdatePlace overwrites a listing's mutable fields; owner only.
func (h *PlaceHandlers) UpdatePlace(c echo.Context) error {
	callerID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req updatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	placeID, err := uuid.Parse(req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Place ID is required")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	place, err := h.places.Update(ctx, callerID, placeID, &req.PlaceInput)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "place updated!", "place": place})
}

// GetPlaces returns the public feed of approved listings.
func (h *PlaceHandlers) GetPlaces(c echo.Context) error {
	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	places, err := h.places.Active(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"places": places})
}

// PendingPlaces returns listings awaiting approval, each with its owner
// summary.
func (h *PlaceHandlers) PendingPlaces(c echo.Context) error {
	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	places, err := h.places.PendingWithOwners(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"places": places})
}

// SinglePlace returns one listing by id.
func (h *PlaceHandlers) SinglePlace(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Place ID is required")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	place, err := h.places.Get(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"place": place})
}

// SearchPlaces matches the keyword against listing addresses. An empty
// keyword returns every place, mirroring the legacy contract.
func (h *PlaceHandlers) SearchPlaces(c echo.Context) error {
	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	places, err := h.places.Search(ctx, c.Param("key"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, places)
}

// PropertyTypes returns the fixed set of listable property types.
func (h *PlaceHandlers) PropertyTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"propertyTypes": models.PropertyTypes()})
}

// ActivatePlace approves a pending listing. Idempotent; admin gated at the
// route.
func (h *PlaceHandlers) ActivatePlace(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Place ID is required")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	if err := h.places.Activate(ctx, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Property approved successfully"})
}

// DeletePlace removes a listing; owner only.
func (h *PlaceHandlers) DeletePlace(c echo.Context) error {
	callerID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Place ID is required")
	}

	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	if err := h.places.Delete(ctx, callerID, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Place deleted successfully"})
}
