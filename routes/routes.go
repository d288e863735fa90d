package routes

import (
	"net/http"
	"slices"

	"customer-service/config"
	"customer-service/controllers"
	"customer-service/repository"
	"customer-service/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the long-lived resources the router hands to controllers.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Customers repository.CustomerRepository
}

// customerBasePaths are the mount points of the customer resource. The UI uses
// /customers, API clients use /api/customers.
var customerBasePaths = []string{"/customers", "/api/customers"}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(config.RequestLogger(deps.Logger))
	r.Use(gin.Recovery())
	if len(deps.Config.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(deps.Config.CORSAllowedOrigins)))
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "The requested URL was not found on the server.")
	})
	r.NoMethod(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})

	r.GET("/", controllers.Index)
	r.GET("/health", controllers.Health(deps.Customers))

	// mutating routes need a bearer token once a signing secret is configured
	var guard []gin.HandlerFunc
	if deps.Config.AuthEnabled() {
		guard = append(guard, utils.AuthMiddleware(deps.Config.JWTSecret))
	}
	protect := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(slices.Clone(guard), h)
	}

	customerController := controllers.NewCustomerController(deps.Customers, deps.Logger)
	for _, base := range customerBasePaths {
		customers := r.Group(base)
		{
			customers.GET("", customerController.ListCustomers)
			customers.POST("", protect(customerController.CreateCustomer)...)
			customers.GET("/:id", customerController.GetCustomer)
			customers.PUT("/:id", protect(customerController.UpdateCustomer)...)
			customers.DELETE("/:id", protect(customerController.DeleteCustomer)...)
			customers.PUT("/:id/suspend", protect(customerController.SuspendCustomer)...)
			customers.PUT("/:id/activate", protect(customerController.ActivateCustomer)...)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", config.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Location", config.RequestIDHeader},
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
