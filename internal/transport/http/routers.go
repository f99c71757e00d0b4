package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context API handlers for routing.
type ApiHandleFunctions struct {
	CheckoutAPI   CheckoutAPI
	ProductsAPI   ProductsAPI
	CustomersAPI  CustomersAPI
	DeliveriesAPI DeliveriesAPI
}

// NewRouter returns a gin engine with all API routes and CORS configured.
// allowedOrigins is a comma-separated origin list; empty allows all origins.
func NewRouter(handleFunctions ApiHandleFunctions, allowedOrigins string) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware(allowedOrigins))
	for _, route := range getRoutes(handleFunctions) {
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{http.MethodGet, "/health", healthCheck},
		{http.MethodGet, "/api/products", handleFunctions.ProductsAPI.ListProducts},
		{http.MethodGet, "/api/products/:id", handleFunctions.ProductsAPI.GetProductById},
		{http.MethodPost, "/api/transactions", handleFunctions.CheckoutAPI.CreateTransaction},
		{http.MethodGet, "/api/transactions", handleFunctions.CheckoutAPI.ListTransactions},
		{http.MethodGet, "/api/transactions/:id", handleFunctions.CheckoutAPI.GetTransactionById},
		{http.MethodGet, "/api/transactions/:id/status", handleFunctions.CheckoutAPI.GetTransactionStatus},
		{http.MethodGet, "/api/customers/:email", handleFunctions.CustomersAPI.GetCustomerByEmail},
		{http.MethodGet, "/api/deliveries/:transactionId", handleFunctions.DeliveriesAPI.GetDeliveryByTransactionId},
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func corsMiddleware(allowedOrigins string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := splitOrigins(allowedOrigins)
	if len(origins) == 0 {
		config.AllowAllOrigins = true
		config.AllowCredentials = false
	} else {
		config.AllowOrigins = origins
	}
	return cors.New(config)
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
