package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"quizmaster/backend/repository"
	"quizmaster/backend/utils"
)

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+param)
	}
	return uint(id), nil
}

// queryID reads an optional positive integer query parameter; 0 means absent.
func queryID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+key)
	}
	return uint(id), nil
}

// bindJSON parses the body into dst and runs its validate tags.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	return utils.ValidateStruct(dst)
}

// httpError converts repository sentinels into HTTP errors named after entity.
func httpError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	var fieldErrs utils.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, entity+" already exists")
	case errors.Is(err, repository.ErrForeignKey):
		return fiber.NewError(fiber.StatusNotFound, "Referenced record does not exist")
	}
	return err
}

const dateLayout = "2006-01-02"

func parseDate(field, value string) (*datatypes.Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, utils.FieldErrors{field: "must be a date in YYYY-MM-DD format"}
	}
	d := datatypes.Date(t)
	return &d, nil
}

// parseClock accepts HH:MM or HH:MM:SS.
func parseClock(field, value string) (*datatypes.Time, error) {
	if value == "" {
		return nil, nil
	}
	layout := "15:04:05"
	if strings.Count(value, ":") == 1 {
		layout = "15:04"
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil, utils.FieldErrors{field: "must be a time in HH:MM or HH:MM:SS format"}
	}
	d := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
	return &d, nil
}

func formatDate(d *datatypes.Date) interface{} {
	if d == nil {
		return nil
	}
	return time.Time(*d).Format(dateLayout)
}

func formatClock(t *datatypes.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.String()
}
