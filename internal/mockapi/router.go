package mockapi

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires the API routes. The layout mirrors the remote backend:
// everything lives under /api, browse endpoints are public, mutations need a
// token.
func buildRouter(logger *log.Logger, data *state) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(identify(data))

	api.POST("/auth/login/", loginHandler(data))
	api.POST("/auth/register/", registerHandler(data))

	api.GET("/products/", listProductsHandler(data))
	api.GET("/products/by_category/", productsByCategoryHandler(data))
	api.GET("/products/low_stock/", lowStockHandler(data))
	api.GET("/products/out_of_stock/", outOfStockHandler(data))
	api.GET("/products/:id/", getProductHandler(data))
	api.POST("/products/:id/check_availability/", checkAvailabilityHandler(data))
	api.POST("/products/", authRequired(), createProductHandler(data))
	api.PUT("/products/:id/", authRequired(), updateProductHandler(data))
	api.DELETE("/products/:id/", authRequired(), deleteProductHandler(data))

	api.GET("/categories/", listCategoriesHandler(data))
	api.GET("/categories/:id/", getCategoryHandler(data))
	api.POST("/categories/", authRequired(), createCategoryHandler(data))

	api.GET("/users/", authRequired(), listUsersHandler(data))
	api.GET("/users/me/", authRequired(), currentUserHandler())

	api.POST("/orders/", authRequired(), createOrderHandler(data))
	api.GET("/orders/my_orders/", authRequired(), myOrdersHandler(data))
	api.POST("/orders/:id/cancel/", authRequired(), cancelOrderHandler(data))

	return router
}
