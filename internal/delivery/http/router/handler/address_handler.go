package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"membership/internal/delivery/http/response"
	"membership/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AddressHandler holds dependencies for postal address handlers.
type AddressHandler struct {
	uc     usecase.AddressUsecase
	logger *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler, injected by Fx.
func NewAddressHandler(uc usecase.AddressUsecase, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{uc: uc, logger: logger}
}

// addressRequest is the wire shape of address create/update requests.
type addressRequest struct {
	EmailID   int    `json:"emailId"`
	CountryID int    `json:"countryId" validate:"required"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	HouseName string `json:"houseName"`
	Street    string `json:"street"`
	Town      string `json:"town"`
	City      string `json:"city"`
	County    string `json:"county"`
	Postcode  string `json:"postcode"`
}

// Create records a full postal address.
func (h *AddressHandler) Create(c echo.Context) error {
	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	address, err := h.uc.Create(c.Request().Context(), &usecase.CreateAddressInput{
		EmailID:   req.EmailID,
		CountryID: req.CountryID,
		Title:     req.Title,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		HouseName: req.HouseName,
		Street:    req.Street,
		Town:      req.Town,
		City:      req.City,
		County:    req.County,
		Postcode:  req.Postcode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, address, "Address created")
}

// countryOnlyRequest is the wire shape of country-only address requests.
type countryOnlyRequest struct {
	EmailID   int `json:"emailId"`
	CountryID int `json:"countryId" validate:"required"`
}

// CreateCountryOnly records an address carrying only a country reference.
func (h *AddressHandler) CreateCountryOnly(c echo.Context) error {
	var req countryOnlyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	address, err := h.uc.CreateCountryOnly(c.Request().Context(), req.EmailID, req.CountryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, address, "Country-only address created")
}

// Update rewrites a full address in place.
func (h *AddressHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Address id must be numeric")
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	address, err := h.uc.Update(c.Request().Context(), &usecase.UpdateAddressInput{
		ID:        id,
		CountryID: req.CountryID,
		Title:     req.Title,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		HouseName: req.HouseName,
		Street:    req.Street,
		Town:      req.Town,
		City:      req.City,
		County:    req.County,
		Postcode:  req.Postcode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Address updated")
}

// UpdateCountryOnly changes the country of a country-only address.
func (h *AddressHandler) UpdateCountryOnly(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Address id must be numeric")
	}

	var req countryOnlyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	address, err := h.uc.UpdateCountryOnly(c.Request().Context(), id, req.CountryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address, "Country-only address updated")
}

// Get resolves an address by numeric id. The display query parameters control
// the optional concatenated rendering included in the payload.
func (h *AddressHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Address id must be numeric")
	}

	address, err := h.uc.ResolveByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	payload := map[string]any{"address": address}
	if delimiter := c.QueryParam("delimiter"); delimiter != "" {
		includePostcode := c.QueryParam("includePostcode") != "false"
		payload["display"] = address.ConcatenateDisplay(delimiter, includePostcode)
	}

	return response.Success(c, http.StatusOK, payload, "Address retrieved")
}
