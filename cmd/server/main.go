package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/Felipesc023/completa-site/internal/cart"
	"github.com/Felipesc023/completa-site/internal/checkout"
	"github.com/Felipesc023/completa-site/internal/config"
	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/Felipesc023/completa-site/internal/handlers"
	"github.com/Felipesc023/completa-site/internal/handlers/admin"
	"github.com/Felipesc023/completa-site/internal/handlers/payment"
	"github.com/Felipesc023/completa-site/internal/handlers/product"
	"github.com/Felipesc023/completa-site/internal/handlers/user"
	"github.com/Felipesc023/completa-site/internal/pagbank"
	"github.com/Felipesc023/completa-site/internal/routes"
	"github.com/Felipesc023/completa-site/internal/store"
	"github.com/Felipesc023/completa-site/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	initOAuthProviders()
	wireHandlers()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Servidor Completa rodando na porta", port)
	r.Run(":" + port)
}

// wireHandlers monta os stores e injeta as dependências nos pacotes de
// handlers.
func wireHandlers() {
	products := store.NewScyllaProductStore(database.Redis)
	orders := store.NewScyllaOrderStore(database.Redis)

	provider := pagbank.NewClientFromEnv()
	if provider == nil {
		log.Println("⚠️ PAGBANK_TOKEN não configurado — checkout online indisponível")
	} else {
		log.Println("💳 Cliente PagBank inicializado")
	}

	product.Store = products
	admin.Products = products
	admin.Orders = orders
	handlers.Products = products
	handlers.Orders = orders

	user.Products = products
	user.Orders = orders
	user.CartStorage = &cart.RedisStorage{Client: database.Redis}
	user.Wishlist = &cart.WishlistStorage{Client: database.Redis}

	payment.Orchestrator = &checkout.Orchestrator{
		Provider:  provider,
		Orders:    orders,
		Mailer:    utils.SMTPMailer{},
		NotifyURL: os.Getenv("PAGBANK_NOTIFICATION_URL"),
	}
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Println("⚠️ SESSION_SECRET ausente — login social desativado")
		return
	}

	cookieStore := sessions.NewCookieStore([]byte(sessionSecret))
	cookieStore.MaxAge(86400 * 30)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   os.Getenv("GIN_MODE") == "release",
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = cookieStore

	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		if provider := req.FormValue("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	var providers []goth.Provider

	if id, secret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"); id != "" && secret != "" {
		providers = append(providers, google.New(id, secret, baseURL+"/api/auth/google/callback"))
		log.Println("✅ Google OAuth ativado")
	}
	if id, secret := os.Getenv("FACEBOOK_CLIENT_ID"), os.Getenv("FACEBOOK_CLIENT_SECRET"); id != "" && secret != "" {
		providers = append(providers, facebook.New(id, secret, baseURL+"/api/auth/facebook/callback"))
		log.Println("✅ Facebook OAuth ativado")
	}

	if len(providers) == 0 {
		log.Println("⚠️ Nenhum provider OAuth configurado")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d provider(s) OAuth inicializado(s)", len(providers))
}
