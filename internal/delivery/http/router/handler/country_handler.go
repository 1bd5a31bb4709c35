package handler

import (
	"net/http"
	"strconv"

	"membership/internal/delivery/http/response"
	"membership/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CountryHandler serves the country reference data.
type CountryHandler struct {
	uc usecase.CountryUsecase
}

// NewCountryHandler is the constructor for CountryHandler, injected by Fx.
func NewCountryHandler(uc usecase.CountryUsecase) *CountryHandler {
	return &CountryHandler{uc: uc}
}

// List returns all countries ordered by display text.
func (h *CountryHandler) List(c echo.Context) error {
	countries, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, countries, "Countries retrieved")
}

// Get returns a country by numeric id.
func (h *CountryHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Country id must be numeric")
	}

	country, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, country, "Country retrieved")
}
