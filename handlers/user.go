package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"snapfeed/engagement"
	"snapfeed/store"
)

type UserHandler struct {
	users      *store.UserStore
	engagement *engagement.Service
}

func NewUserHandler(users *store.UserStore, svc *engagement.Service) *UserHandler {
	return &UserHandler{users: users, engagement: svc}
}

// GetUsers lists accounts, optionally filtered by ?search= over
// username and email.
func (h *UserHandler) GetUsers(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	users, err := h.users.Search(ctx, c.Query("search"))
	if err != nil {
		log.Printf("GetUsers error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		failFor(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		failFor(c, err, "User not found")
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Internal", "Failed to hash password")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(c, http.StatusConflict, "Conflict", "Email already in use")
			return
		}
		failFor(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the account and pulls its id out of every post's
// likes and saves so no post keeps a dangling engagement entry. A
// failed cleanup is reported as a partial update rather than a silent
// success.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	if err := h.engagement.RemoveUser(ctx, id); err != nil {
		failFor(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
