package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"spotboard/internal/price"
	"spotboard/internal/storage"
	"spotboard/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *price.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/prices/board", func(c *fiber.Ctx) error {
		board, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no price board assembled yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch price board")
		}

		// Revalidation hint, not a hard expiry: serving a slightly stale
		// board past this window is fine.
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", board.Refresh.SecondsRemaining))
		return c.JSON(board)
	})

	v1.Get("/prices/current", func(c *fiber.Ctx) error {
		board, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no price board assembled yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch price board")
		}

		// A miss is a valid outcome: report "unknown" rather than an error.
		if board.CurrentIndex < 0 {
			return c.JSON(fiber.Map{"known": false})
		}

		entry := board.Series[board.CurrentIndex]
		return c.JSON(fiber.Map{
			"known": true,
			"start": entry.Start,
			"price": entry.Price,
			"index": board.CurrentIndex,
		})
	})

	v1.Get("/prices/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		boards, err := service.History(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no boards retained for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch board history")
		}

		return c.JSON(fiber.Map{
			"from":   req.From,
			"to":     req.To,
			"boards": boards,
		})
	})

	v1.Get("/prices/day", func(c *fiber.Ctx) error {
		var req dayQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		prices, err := service.DayPrices(c.Context(), req.Date)
		if err != nil {
			if errors.Is(err, storage.ErrDayNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no prices published for requested date")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch day prices")
		}

		return c.JSON(fiber.Map{
			"date":   req.Date,
			"prices": prices,
		})
	})
}

// dayQuery holds query parameters for the single-day endpoint.
type dayQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

func (q *dayQuery) bind(c *fiber.Ctx) error {
	q.Date = c.Query("date")
	return validate.Struct(q)
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
