package bundles

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/pkg/pagination"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/bundles", h.ListBundles)
	api.GET("/bundles/:id", h.GetBundle)
	api.GET("/bundles/:id/raw", h.GetRaw)
}

func (h *Handler) ListBundles(c echo.Context) error {
	items, err := h.svc.ListBundles(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, "", err)
	}
	return c.JSON(http.StatusOK, pagination.Paginate(items, pagination.FromContext(c), c.Request().URL.Path))
}

func (h *Handler) GetBundle(c echo.Context) error {
	id := c.Param("id")
	v, err := h.svc.GetBundle(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, id, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetRaw(c echo.Context) error {
	id := c.Param("id")
	data, err := h.svc.Raw(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, id, err)
	}
	return c.Blob(http.StatusOK, "application/fhir+json", data)
}

// errorResponse maps retrieval failures to an OperationOutcome body.
func (h *Handler) errorResponse(c echo.Context, id string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome(id))
	case errors.Is(err, ErrTimeout):
		return c.JSON(http.StatusGatewayTimeout, fhir.TimeoutOutcome(err.Error()))
	case errors.Is(err, ErrNetwork):
		return c.JSON(http.StatusBadGateway, fhir.UpstreamOutcome(err.Error()))
	case errors.Is(err, ErrInvalidBundle):
		return c.JSON(http.StatusUnprocessableEntity, fhir.InvalidBundleOutcome(id, err.Error()))
	}
	h.logger.Error().Err(err).Str("bundle_id", id).Msg("bundle request failed")
	return c.JSON(http.StatusInternalServerError, fhir.InternalErrorOutcome("internal server error"))
}
