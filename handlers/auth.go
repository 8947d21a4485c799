package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"snapfeed/middleware"
	"snapfeed/models"
	"snapfeed/store"
)

type AuthHandler struct {
	users     *store.UserStore
	jwtSecret string
}

func NewAuthHandler(users *store.UserStore, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	if _, err := h.users.FindByEmail(ctx, req.Email); err == nil {
		fail(c, http.StatusConflict, "Conflict", "Email already in use")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Register lookup error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Database error")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal", "Failed to hash password")
		return
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
		LikedPosts:   []primitive.ObjectID{},
		SavedPosts:   []primitive.ObjectID{},
	}

	if err := h.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to the unique email index.
			fail(c, http.StatusConflict, "Conflict", "Email already in use")
			return
		}
		log.Printf("Register insert error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Failed to create user")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user.ID.Hex())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal", "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
		return
	}
	if err != nil {
		log.Printf("Login lookup error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Database error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user.ID.Hex())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal", "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// Logout is an acknowledgement; tokens are stateless and expire on
// their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
