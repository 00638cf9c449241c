package echoServer

import (
	authctrl "github.com/TonCerques/alugaki/app/echoServer/controller/auth"
	bookingctrl "github.com/TonCerques/alugaki/app/echoServer/controller/booking"
	chatctrl "github.com/TonCerques/alugaki/app/echoServer/controller/chat"
	itemctrl "github.com/TonCerques/alugaki/app/echoServer/controller/item"
	profilectrl "github.com/TonCerques/alugaki/app/echoServer/controller/profile"

	"github.com/labstack/echo/v4"
)

type C struct {
	Auth    *authctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Chat    *chatctrl.Controller
	Profile *profilectrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)
	pub.GET("/items", c.Item.List)
	pub.GET("/items/:id", c.Item.Get)

	// Auth
	priv := e.Group("/v1", JWTAuth(c.JWTSecret))
	priv.POST("/auth/logout", c.Auth.Logout)

	priv.GET("/profiles/me", c.Profile.Me)
	priv.PATCH("/profiles/me", c.Profile.Update)
	priv.POST("/kyc", c.Profile.SubmitKyc)
	priv.GET("/kyc", c.Profile.KycHistory)
	priv.PATCH("/profiles/:id/kyc", c.Profile.ReviewKyc)

	priv.POST("/items", c.Item.Create)
	priv.GET("/users/me/items", c.Item.Mine)
	priv.PATCH("/items/:id", c.Item.Update)
	priv.DELETE("/items/:id", c.Item.Deactivate)

	priv.POST("/bookings", c.Booking.Create)
	priv.GET("/users/me/bookings", c.Booking.Mine)
	priv.GET("/bookings/:id", c.Booking.Get)
	priv.POST("/bookings/:id/decision", c.Booking.Decide)
	priv.POST("/bookings/:id/cancel", c.Booking.Cancel)
	priv.POST("/bookings/:id/payment", c.Booking.ConfirmPayment)
	priv.POST("/bookings/:id/handover", c.Booking.Handover)
	priv.POST("/bookings/:id/return", c.Booking.Return)

	priv.GET("/chat/rooms", c.Chat.Rooms)
	priv.GET("/chat/rooms/:id/messages", c.Chat.Messages)
	priv.POST("/chat/rooms/:id/messages", c.Chat.Send)
}
