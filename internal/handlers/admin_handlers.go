package handlers

import (
	"net/http"

	"staymart/internal/common"
	"staymart/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminHandlers serves the aggregate dashboard counts.
type AdminHandlers struct {
	stats services.StatsService
}

func NewAdminHandlers(stats services.StatsService) *AdminHandlers {
	return &AdminHandlers{stats: stats}
}

// GetStats returns the user/place/booking totals. All-or-nothing: a failed
// count yields a 500 with no partial result.
func (h *AdminHandlers) GetStats(c echo.Context) error {
	ctx, cancel := common.StoreContext(c.Request().Context())
	defer cancel()

	stats, err := h.stats.GetStats(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}
