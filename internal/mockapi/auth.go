package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shophub-client/internal/domain"
)

const userCtxKey = "mockapi.user"

// identify resolves the Authorization header to a user when a valid token is
// present. It never rejects: public endpoints work without a token.
func identify(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Token ")
		if !ok {
			c.Next()
			return
		}

		data.mu.Lock()
		userID, ok := data.tokens[token]
		var u *user
		if ok {
			u = data.users[userID]
		}
		data.mu.Unlock()

		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}

// authRequired guards endpoints that need a logged-in user.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(userCtxKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *user {
	if v, ok := c.Get(userCtxKey); ok {
		return v.(*user)
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func loginHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		u := data.userByUsername(req.Username)
		if u == nil || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}

		// One token per user, reused across logins like the backend does.
		for token, id := range data.tokens {
			if id == u.ID {
				c.JSON(http.StatusOK, gin.H{"token": token})
				return
			}
		}
		token := uuid.NewString()
		data.tokens[token] = u.ID
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body."})
			return
		}

		username := strings.TrimSpace(req.Username)
		if len(username) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username must be at least 3 characters long."})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || !strings.Contains(email, "@") || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Please provide a valid email address."})
			return
		}
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "This password is too short. It must contain at least 8 characters."})
			return
		}

		data.mu.Lock()
		defer data.mu.Unlock()

		if data.userByUsername(username) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with this username already exists."})
			return
		}
		if data.userByEmail(email) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "A user with this email already exists."})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create user."})
			return
		}

		data.nextUserID++
		u := &user{ID: data.nextUserID, Username: username, Email: email, PasswordHash: hash}
		data.users[u.ID] = u

		c.JSON(http.StatusCreated, domain.User{ID: u.ID, Username: u.Username, Email: u.Email})
	}
}

func listUsersHandler(data *state) gin.HandlerFunc {
	return func(c *gin.Context) {
		data.mu.Lock()
		defer data.mu.Unlock()
		users := make([]domain.User, 0, len(data.users))
		for _, u := range data.users {
			users = append(users, domain.User{ID: u.ID, Username: u.Username, Email: u.Email})
		}
		c.JSON(http.StatusOK, users)
	}
}

func currentUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		c.JSON(http.StatusOK, domain.User{ID: u.ID, Username: u.Username, Email: u.Email})
	}
}
