package user

import (
	"log"
	"net/http"
	"strings"

	"github.com/Felipesc023/completa-site/internal/cache"
	"github.com/Felipesc023/completa-site/internal/database"
	"github.com/Felipesc023/completa-site/internal/models"
	"github.com/Felipesc023/completa-site/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const userColumns = `user_id, name, email, password, role, provider, provider_id, photo_url`

// findUserByEmail busca na tabela users_by_email (particionada por e-mail).
func findUserByEmail(email string) (*models.User, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = session.Query(`SELECT `+userColumns+` FROM users_by_email WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Provider, &u.ProviderID, &u.PhotoURL)
	if err == gocql.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// saveUser grava nas duas tabelas: users (por id) e users_by_email.
func saveUser(u models.User) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	batch := session.NewBatch(gocql.LoggedBatch)
	for _, table := range []string{"users", "users_by_email"} {
		batch.Query(`INSERT INTO `+table+` (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Password, u.Role, u.Provider, u.ProviderID, u.PhotoURL)
	}
	if err := session.ExecuteBatch(batch); err != nil {
		return err
	}

	cache.InvalidateUser(u.ID)
	return nil
}

// Register cria uma conta local com senha Argon2id.
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	switch {
	case input.Name == "" || input.Email == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome e e-mail são obrigatórios"})
		return
	case len(input.Password) < 8:
		c.JSON(http.StatusBadRequest, gin.H{"error": "A senha precisa de pelo menos 8 caracteres"})
		return
	}

	existing, err := findUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao verificar o e-mail"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe uma conta com este e-mail"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a conta"})
		return
	}

	u := models.User{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleUser,
		Provider: "local",
	}
	if err := saveUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar a conta"})
		return
	}

	token, _ := utils.GenerateJWT(u)
	log.Printf("✅ Conta criada: %s", u.Email)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  u,
	})
}

// Login autentica uma conta local.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := findUserByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao autenticar"})
		return
	}
	if u == nil || u.Provider != "local" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, u.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}

	token, _ := utils.GenerateJWT(*u)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  u,
	})
}

// Me retorna o perfil do usuário autenticado (com cache de 5 minutos).
func Me(c *gin.Context) {
	u, err := cache.GetUser(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar o perfil"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		return
	}
	c.JSON(http.StatusOK, u)
}
