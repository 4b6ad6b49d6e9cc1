package handler

import (
	"strconv"

	"taskboard/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("invalid %s", name)
	}

	return id, nil
}

// optionalBool binds a query parameter that may be absent.
func optionalBool(c echo.Context, name string, dst **bool) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", name)
	}
	*dst = &value

	return nil
}

func bindUserFilter(c echo.Context) (entity.UserFilter, error) {
	var filter entity.UserFilter
	err := echo.QueryParamsBinder(c).
		String("username", &filter.Username).
		String("email", &filter.Email).
		Int("limit", &filter.Limit).
		Int("offset", &filter.Offset).
		BindError()
	if err != nil {
		return filter, errors.WithStack(err)
	}

	if err := optionalBool(c, "isLoggedIn", &filter.IsLoggedIn); err != nil {
		return filter, err
	}

	return filter, nil
}

func bindTaskFilter(c echo.Context) (entity.TaskFilter, error) {
	var filter entity.TaskFilter
	err := echo.QueryParamsBinder(c).
		String("owner", &filter.Owner).
		Int("limit", &filter.Limit).
		Int("offset", &filter.Offset).
		BindError()
	if err != nil {
		return filter, errors.WithStack(err)
	}

	if err := optionalBool(c, "completed", &filter.Completed); err != nil {
		return filter, err
	}

	return filter, nil
}
