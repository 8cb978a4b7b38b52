package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-dash/internal/domain/usecase/dashboard"
	"weather-dash/pkg/msg"
	"weather-dash/pkg/util/numberutils"
)

const (
	defaultHourlyWindow = 24
	maxHourlyWindow     = 24
)

type DashboardController struct {
	api     *echo.Group
	useCase dashboard.UseCase
}

func NewDashboardController(api *echo.Group, useCase dashboard.UseCase) *DashboardController {
	return &DashboardController{api: api, useCase: useCase}
}

// InitDashboardRoutes initializes dashboard routes
func (controller *DashboardController) InitDashboardRoutes() {
	controller.api.GET("/dashboard/navigation", controller.GetNavigation)
	controller.api.GET("/dashboard/overview", controller.GetOverview)
	controller.api.GET("/dashboard/city/:city", controller.GetCityDetail)
}

// GetNavigation returns the view selector options: the home marker followed
// by the sorted city names.
func (controller *DashboardController) GetNavigation(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.Navigation())
}

// GetOverview returns the national overview: map points, summary table and
// analytics. An upstream failure degrades to a section-level error message.
func (controller *DashboardController) GetOverview(c echo.Context) error {
	overview, err := controller.useCase.Overview()
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": msg.GetMessage("dashboard.overview.unavailable")})
	}
	return c.JSON(http.StatusOK, overview)
}

// GetCityDetail returns the detail view for one city. The hourly chart
// window can be narrowed with the `hours` query parameter (1-24).
func (controller *DashboardController) GetCityDetail(c echo.Context) error {
	city := c.Param("city")

	hours := numberutils.ToIntWithDefault(c.QueryParam("hours"), defaultHourlyWindow)
	if !numberutils.IsIntInRange(hours, 1, maxHourlyWindow) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "hours must be between 1 and 24"})
	}

	detail, err := controller.useCase.CityDetail(city, hours)
	if err != nil {
		if errors.Is(err, dashboard.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "City not found"})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": msg.GetMessage("dashboard.detail.unavailable", city)})
	}
	return c.JSON(http.StatusOK, detail)
}
