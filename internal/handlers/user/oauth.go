package user

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const providerKey ctxKey = "provider"

// BeginOAuth inicia o fluxo OAuth (google ou facebook).
func BeginOAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider não informado"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), providerKey, provider),
	)
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// OAuthCallback completa o fluxo, cria a conta no primeiro acesso e
// redireciona para o front com o JWT na query string.
func OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), providerKey, provider),
	)
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := findUserByEmail(gothUser.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao autenticar"})
		return
	}

	if u == nil {
		u = &models.User{
			ID:         uuid.NewString(),
			Name:       gothUser.Name,
			Email:      gothUser.Email,
			Role:       models.RoleUser,
			Provider:   provider,
			ProviderID: gothUser.UserID,
			PhotoURL:   gothUser.AvatarURL,
		}
		if err := saveUser(*u); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a conta"})
			return
		}
		log.Printf("✅ Conta criada via %s: %s", provider, u.Email)
	}

	token, err := utils.GenerateJWT(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar o token"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	c.Redirect(http.StatusTemporaryRedirect,
		fmt.Sprintf("%s/auth/callback?token=%s", frontend, url.QueryEscape(token)))
}
