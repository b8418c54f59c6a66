package handlers

import (
	"errors"
	"fmt"

	"catalogseed/internal/repositories"
	"catalogseed/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultPreviewCount = 5
	maxPreviewCount     = 50
)

// SeedHandler exposes seeding over HTTP.
type SeedHandler struct {
	service      *services.SeedService
	defaultCount int
	validate     *validator.Validate
}

// NewSeedHandler creates a new SeedHandler. defaultCount is used when a seed
// request omits count.
func NewSeedHandler(service *services.SeedService, defaultCount int) *SeedHandler {
	return &SeedHandler{
		service:      service,
		defaultCount: defaultCount,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the seeding routes with the Fiber app.
func (h *SeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/preview", h.HandlePreview)
	router.Post("/seed", h.HandleSeed)
}

// SeedRequest represents the request body for a seeding run.
type SeedRequest struct {
	Count int `json:"count" validate:"gte=1,lte=10000"`
}

// HandlePreview returns generated products without writing them.
func (h *SeedHandler) HandlePreview(c *fiber.Ctx) error {
	count := c.QueryInt("count", defaultPreviewCount)
	if count < 1 || count > maxPreviewCount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("count must be between 1 and %d", maxPreviewCount),
		})
	}
	return c.JSON(h.service.Preview(count))
}

// HandleSeed runs one seeding pass and returns its summary.
func (h *SeedHandler) HandleSeed(c *fiber.Ctx) error {
	req := SeedRequest{Count: h.defaultCount}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	summary, err := h.service.Seed(c.UserContext(), req.Count)
	if err != nil {
		log.Error().Err(err).Str("kind", repositories.ErrorKind(err)).Int("count", req.Count).Msg("seeding failed")
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, repositories.ErrConnection):
			status = fiber.StatusServiceUnavailable
		case errors.Is(err, repositories.ErrWrite):
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Seeding failed",
			"kind":    repositories.ErrorKind(err),
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(summary)
}

func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorMessages["_"] = err.Error()
		return errorMessages
	}
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
