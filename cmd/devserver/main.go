package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mfintake/intakecli/internal/devserver"
	"github.com/mfintake/intakecli/internal/logging"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	devserver.NewHandler(devserver.NewStore(), logger).RegisterRoutes(e)

	if err := e.Start(*addr); err != nil {
		e.Logger.Fatal(err)
	}
}
