package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/TonCerques/alugaki/app/echoServer"
	authctrl "github.com/TonCerques/alugaki/app/echoServer/controller/auth"
	bookingctrl "github.com/TonCerques/alugaki/app/echoServer/controller/booking"
	chatctrl "github.com/TonCerques/alugaki/app/echoServer/controller/chat"
	itemctrl "github.com/TonCerques/alugaki/app/echoServer/controller/item"
	profilectrl "github.com/TonCerques/alugaki/app/echoServer/controller/profile"
	"github.com/TonCerques/alugaki/app/echoServer/validation"
	"github.com/TonCerques/alugaki/config"
	"github.com/TonCerques/alugaki/realtime"
	bookingrepo "github.com/TonCerques/alugaki/repository/booking"
	chatrepo "github.com/TonCerques/alugaki/repository/chat"
	itemrepo "github.com/TonCerques/alugaki/repository/item"
	profilerepo "github.com/TonCerques/alugaki/repository/profile"
	"github.com/TonCerques/alugaki/repository/store"
	userrepo "github.com/TonCerques/alugaki/repository/user"
	verificationrepo "github.com/TonCerques/alugaki/repository/verification"
	authsvc "github.com/TonCerques/alugaki/service/auth"
	bookingsvc "github.com/TonCerques/alugaki/service/booking"
	"github.com/TonCerques/alugaki/util/database"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// storage: one bolt file holding the whole dataset
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Error("open database failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	st, err := store.New(db, log)
	if err != nil {
		log.Error("store init failed", "err", err)
		os.Exit(1)
	}
	// first load seeds fixtures and applies pending migrations
	if _, err := st.Load(ctx); err != nil {
		log.Error("store load failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(st)
	pr := profilerepo.New(st)
	ir := itemrepo.New(st)
	br := bookingrepo.New(st)
	cr := chatrepo.New(st)
	vr := verificationrepo.New(st)

	// services
	policy := bookingsvc.NewAllowList(cfg.AutoApproveItems...)
	bsvc := bookingsvc.New(st, br, policy, log)
	asvc := authsvc.New(ur, pr, cfg.JWTSecret)

	// realtime bus; redis mirrors events to other processes when configured
	var broker realtime.Broker = realtime.NewLocalBroker()
	if cfg.RedisAddr != "" {
		broker = realtime.NewRedisBroker(cfg.RedisAddr, log)
	}
	bus := realtime.New(cr, broker, log)
	if err := bus.Start(ctx); err != nil {
		log.Error("bus start failed", "err", err)
		os.Exit(1)
	}

	// controllers
	val := validation.New()
	v := val.Core()
	authC := &authctrl.Controller{Svc: asvc, V: v, Log: log}
	itemC := &itemctrl.Controller{Items: ir, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bsvc, Items: ir, V: v, Log: log}
	chatC := &chatctrl.Controller{Chat: cr, Bus: bus, V: v, Log: log}
	profileC := &profilectrl.Controller{Profiles: pr, Logs: vr, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"session": bus.SessionID(),
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Item:    itemC,
		Booking: bookingC,
		Chat:    chatC,
		Profile: profileC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + port))
}
