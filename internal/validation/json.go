package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StrictJSONSerializer is echo's JSON serializer, except that a request
// body must hold exactly one JSON value. Anything after it is a syntax
// error.
type StrictJSONSerializer struct {
	echo.DefaultJSONSerializer
}

// Deserialize decodes the request body into i.
func (StrictJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)

	if err := dec.Decode(i); err != nil {
		var ute *json.UnmarshalTypeError
		var se *json.SyntaxError

		switch {
		case errors.As(err, &ute):
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset),
			).SetInternal(err)
		case errors.As(err, &se):
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error()),
			).SetInternal(err)
		default:
			return err
		}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Syntax error: offset=%v, error=unexpected data after JSON value", dec.InputOffset()),
		)
	}

	return nil
}
