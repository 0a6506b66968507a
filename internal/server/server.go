package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"paypal-checkout-plugin/internal/handler"
	"paypal-checkout-plugin/internal/repository"
	"paypal-checkout-plugin/internal/service"
)

type Server struct {
	echo          *echo.Echo
	paypalHandler *handler.PaypalHandler
}

func NewServer(
	paypalService service.PaypalService,
	basketRepo repository.BasketRepository,
	orderRepo repository.OrderRepository,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	paypalHandler := handler.NewPaypalHandler(paypalService, basketRepo, orderRepo)

	s := &Server{
		echo:          e,
		paypalHandler: paypalHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- checkout entry --------
	api.GET("/payment/methods", s.paypalHandler.GetPaymentMethods)
	api.POST("/payment/basket/:basketID", s.paypalHandler.PayBasket)
	api.POST("/payment/order/:orderID", s.paypalHandler.PayOrder)

	// -------- paypal callbacks --------
	paypal := api.Group("/paypal")
	paypal.GET("/return/", s.paypalHandler.HandleReturn)
	paypal.GET("/cancel/", s.paypalHandler.HandleCancel)
	paypal.POST("/capture/:orderID/", s.paypalHandler.CaptureOrder)
	paypal.POST("/refund/:transactionID/", s.paypalHandler.Refund)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
