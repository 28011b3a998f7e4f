package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/okarhu/daylight-api/internal/astro"
	"github.com/okarhu/daylight-api/internal/gazetteer"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, index *gazetteer.Index) {
	api := app.Group("/api")

	api.Get("/daylightdata", func(c *fiber.Ctx) error {
		req, fieldErrs := parseDaylightQuery(c)
		if len(fieldErrs) > 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": fieldErrs,
			})
		}

		point, err := astro.NewPoint(req.Lat, req.Lon)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		// The current year is a boundary default only; the core always
		// receives the year explicitly.
		year := req.Year
		if year == 0 {
			year = time.Now().UTC().Year()
		}

		return c.Status(fiber.StatusCreated).JSON(astro.Generate(point, year))
	})

	api.Get("/search", func(c *fiber.Ctx) error {
		query := c.Query("query")
		limit := c.QueryInt("limit", gazetteer.DefaultLimit)
		return c.JSON(index.Search(query, limit))
	})
}

// daylightQuery holds query parameters for the daylight endpoint.
type daylightQuery struct {
	Lat  float64 `validate:"gte=-90,lte=90"`
	Lon  float64 `validate:"gte=-180,lte=180"`
	Year int     `validate:"omitempty,gte=1,lte=9999"`
}

// parseDaylightQuery binds and validates the daylight query parameters,
// collecting field-level errors Laravel-style so the client can attribute
// each failure to its input.
func parseDaylightQuery(c *fiber.Ctx) (daylightQuery, map[string][]string) {
	var q daylightQuery
	fieldErrs := map[string][]string{}

	bindFloat(c, "lat", &q.Lat, fieldErrs)
	bindFloat(c, "lon", &q.Lon, fieldErrs)

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			fieldErrs["year"] = append(fieldErrs["year"], "year must be an integer")
		} else {
			q.Year = year
		}
	}

	if len(fieldErrs) > 0 {
		return q, fieldErrs
	}

	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				field := strings.ToLower(fe.Field())
				fieldErrs[field] = append(fieldErrs[field], rangeMessage(field))
			}
		} else {
			fieldErrs["query"] = append(fieldErrs["query"], err.Error())
		}
	}
	return q, fieldErrs
}

func bindFloat(c *fiber.Ctx, name string, dst *float64, fieldErrs map[string][]string) {
	raw := c.Query(name)
	if raw == "" {
		fieldErrs[name] = append(fieldErrs[name], name+" is required")
		return
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fieldErrs[name] = append(fieldErrs[name], name+" must be a number")
		return
	}
	*dst = v
}

func rangeMessage(field string) string {
	switch field {
	case "lat":
		return "lat must be between -90 and 90"
	case "lon":
		return "lon must be between -180 and 180"
	case "year":
		return "year must be between 1 and 9999"
	}
	return "invalid value"
}
