// README: HTTP router registration.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"cab/internal/http/handlers"
	"cab/internal/http/middleware"
	"cab/internal/maps"
	"cab/internal/modules/booking"
)

func NewRouter(bookingService *booking.Service, places *maps.PlacesService) nethttp.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	bookingHandler := handlers.NewBookingHandler(bookingService)
	r.POST("/api/quotes", bookingHandler.Quote)
	r.POST("/api/bookings", bookingHandler.Book)
	r.GET("/api/bookings/:id", bookingHandler.Get)
	r.POST("/api/bookings/:id/cancel", bookingHandler.Cancel)

	if places != nil {
		placesHandler := handlers.NewPlacesHandler(places)
		r.GET("/api/places", placesHandler.Search)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(nethttp.StatusOK, "OK")
	})

	return r
}
