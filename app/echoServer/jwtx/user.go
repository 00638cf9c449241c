// Package jwtx shares the authenticated-user context key between the JWT
// middleware and the controllers.
package jwtx

import "github.com/labstack/echo/v4"

const key = "uid"

func Set(c echo.Context, uid string) { c.Set(key, uid) }

// UID returns the authenticated user id, or "" when unauthenticated.
func UID(c echo.Context) string {
	uid, _ := c.Get(key).(string)
	return uid
}
