package routes

import (
	"os"
	"strings"
	"time"

	"github.com/Felipesc023/completa-site/internal/handlers"
	"github.com/Felipesc023/completa-site/internal/handlers/admin"
	"github.com/Felipesc023/completa-site/internal/handlers/payment"
	"github.com/Felipesc023/completa-site/internal/handlers/product"
	"github.com/Felipesc023/completa-site/internal/handlers/user"
	"github.com/Felipesc023/completa-site/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Catálogo público
	api.GET("/products", product.ListProducts)
	api.GET("/products/search", middleware.SearchRateLimit(), product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/ws/catalog", handlers.CatalogStream)

	// Frete e CEP
	api.POST("/shipping/quote", payment.QuoteShipping)
	api.GET("/cep/:cep", payment.LookupAddress)

	// Autenticação
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/:provider", user.BeginOAuth)
	api.GET("/auth/:provider/callback", user.OAuthCallback)

	// Área do cliente
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/me", user.Me)

		auth.GET("/cart", user.GetCart)
		auth.POST("/cart", user.AddToCart)
		auth.PUT("/cart", user.UpdateCartItem)
		auth.POST("/cart/remove", user.RemoveFromCart)
		auth.DELETE("/cart", user.ClearCart)

		auth.GET("/wishlist", user.GetWishlist)
		auth.POST("/wishlist/toggle", user.ToggleWishlist)

		auth.GET("/orders", user.MyOrders)
		auth.GET("/orders/:id", user.GetMyOrder)

		auth.POST("/checkout", middleware.CheckoutRateLimit(), payment.Checkout)
	}

	// Painel administrativo
	adm := api.Group("/admin")
	adm.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.GET("/products", admin.ListAllProducts)
		adm.POST("/products", admin.CreateProduct)
		adm.PUT("/products/:id", admin.UpdateProduct)
		adm.PATCH("/products/:id/flags/:flag", admin.ToggleProductFlag)
		adm.DELETE("/products/:id", admin.DeleteProduct)
		adm.POST("/images", admin.UploadImage)

		adm.GET("/orders", admin.ListOrders)
		adm.PATCH("/orders/:id/status", admin.UpdateOrderStatus)
		adm.PATCH("/orders/:id/payment-link", admin.SetPaymentLink)

		adm.GET("/ws/orders", handlers.OrdersStream)
	}
}
