package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the authenticated user id injected by the Auth
// middleware. An empty id means the middleware did not run or the token
// carried no subject; either way the request cannot be attributed to an
// identity and is rejected before any service call.
func ctxIdentity(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
