package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kasiv/weather-lookup/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		if !service.Configured() {
			// Missing credential is a configuration error, never faked.
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"current":         fiber.Map{},
				"forecast":        []any{},
				"recommendations": []any{},
				"alerts":          []any{},
				"error":           "Weather service not configured",
			})
		}

		q, err := parseLookupQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Lookup(c.Context(), q.toWeatherQuery())
		if err != nil {
			if errors.Is(err, weather.ErrLocationRequired) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to look up weather")
		}

		return c.JSON(result)
	})
}

// lookupQuery holds query parameters for a weather lookup.
type lookupQuery struct {
	Lat   *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon   *float64 `validate:"omitempty,gte=-180,lte=180"`
	Place string
	Units string `validate:"omitempty,oneof=metric imperial"`
}

func (q lookupQuery) toWeatherQuery() weather.WeatherQuery {
	return weather.WeatherQuery{
		Lat:   q.Lat,
		Lon:   q.Lon,
		Place: q.Place,
		Units: weather.Units(q.Units),
	}
}

func parseLookupQuery(c *fiber.Ctx) (lookupQuery, error) {
	var q lookupQuery

	// Unparsable coordinates are treated as absent so a city parameter can
	// still serve the request.
	q.Lat = parseFloatQuery(c, "lat")
	q.Lon = parseFloatQuery(c, "lon")

	q.Place = strings.TrimSpace(c.Query("city"))
	if q.Place == "" {
		q.Place = strings.TrimSpace(c.Query("location"))
	}

	q.Units = c.Query("units")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

func parseFloatQuery(c *fiber.Ctx, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
