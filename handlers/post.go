package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/engagement"
	"snapfeed/models"
	"snapfeed/slugs"
	"snapfeed/store"
)

type PostHandler struct {
	posts      *store.PostStore
	users      *store.UserStore
	images     *store.ImageStore
	engagement *engagement.Service
}

func NewPostHandler(posts *store.PostStore, users *store.UserStore, images *store.ImageStore, svc *engagement.Service) *PostHandler {
	return &PostHandler{posts: posts, users: users, images: images, engagement: svc}
}

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Images      []string `json:"images"`
}

type UpdatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

func parseImageIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CreatePost assigns the slug, stores the post with the creator as its
// first liker, and mirrors that like on the creator's record.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", "Please provide title and description")
		return
	}

	actor, ok := actorID(c)
	if !ok {
		return
	}

	imageIDs, err := parseImageIDs(req.Images)
	if err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", "Invalid image ID")
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	slugVal, err := slugs.Assign(ctx, req.Title, h.posts)
	if err != nil {
		if errors.Is(err, slugs.ErrDuplicateTitle) {
			fail(c, http.StatusConflict, "Conflict", err.Error())
			return
		}
		log.Printf("CreatePost slug error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Database error")
		return
	}

	post := &models.Post{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Slug:        slugVal,
		Description: req.Description,
		Creator:     actor,
		Images:      imageIDs,
	}

	if err := h.engagement.CreatePost(ctx, post); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// A concurrent creator won the slug; the unique index catches
			// what the pre-check cannot.
			fail(c, http.StatusConflict, "Conflict", "A post with this title already exists")
			return
		}
		log.Printf("CreatePost error: %v", err)
		failFor(c, err, "Post not found")
		return
	}

	h.respondWithPost(ctx, c, http.StatusCreated, post, &actor)
}

// GetPosts lists posts with optional ?search= over title and
// description, projected for the optional viewer.
func (h *PostHandler) GetPosts(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	posts, err := h.posts.Search(ctx, c.Query("search"))
	if err != nil {
		log.Printf("GetPosts error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Failed to fetch posts")
		return
	}

	viewer := viewerID(c)
	views := make([]engagement.PostView, 0, len(posts))
	for i := range posts {
		post := &posts[i]

		creator, err := h.users.FindByID(ctx, post.Creator)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusInternalServerError, "Internal", "Database error")
			return
		}

		var images []models.Image
		if len(post.Images) > 0 {
			images, err = h.images.FindMetaByIDs(ctx, post.Images)
			if err != nil {
				fail(c, http.StatusInternalServerError, "Internal", "Database error")
				return
			}
		}

		views = append(views, engagement.ProjectPost(post, creator, images, viewer))
	}

	c.JSON(http.StatusOK, views)
}

func (h *PostHandler) GetPostByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	post, err := h.posts.FindByID(ctx, id)
	if err != nil {
		failFor(c, err, "Post not found")
		return
	}

	h.respondWithPost(ctx, c, http.StatusOK, post, viewerID(c))
}

func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	post, err := h.posts.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		failFor(c, err, "Post not found")
		return
	}

	h.respondWithPost(ctx, c, http.StatusOK, post, viewerID(c))
}

// UpdatePost applies the provided fields. The slug is re-derived only
// when the update carries a title, and the uniqueness check is skipped
// when the derived slug is the one the post already owns.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", err.Error())
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	post, err := h.posts.FindByID(ctx, id)
	if err != nil {
		failFor(c, err, "Post not found")
		return
	}

	if req.Title != "" {
		post.Title = req.Title
		if newSlug := slugs.Make(req.Title); newSlug != post.Slug {
			assigned, err := slugs.Assign(ctx, req.Title, h.posts)
			if err != nil {
				if errors.Is(err, slugs.ErrDuplicateTitle) {
					fail(c, http.StatusConflict, "Conflict", err.Error())
					return
				}
				log.Printf("UpdatePost slug error: %v", err)
				fail(c, http.StatusInternalServerError, "Internal", "Database error")
				return
			}
			post.Slug = assigned
		}
	}

	if req.Description != "" {
		post.Description = req.Description
	}

	if req.Images != nil {
		imageIDs, err := parseImageIDs(req.Images)
		if err != nil {
			fail(c, http.StatusBadRequest, "InvalidInput", "Invalid image ID")
			return
		}
		post.Images = imageIDs
	}

	if err := h.posts.Save(ctx, post); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(c, http.StatusConflict, "Conflict", "A post with this title already exists")
			return
		}
		failFor(c, err, "Post not found")
		return
	}

	h.respondWithPost(ctx, c, http.StatusOK, post, viewerID(c))
}

// DeletePost removes the post and pulls its id from every user's
// likedPosts and savedPosts. A failed cleanup is reported as a partial
// update rather than a silent success.
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	if err := h.engagement.RemovePost(ctx, id); err != nil {
		failFor(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	h.toggle(c, models.EngagementLike)
}

func (h *PostHandler) SavePost(c *gin.Context) {
	h.toggle(c, models.EngagementSave)
}

func (h *PostHandler) toggle(c *gin.Context, kind models.EngagementKind) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	out, err := h.engagement.Toggle(ctx, kind, actor, id)
	if err != nil {
		failFor(c, err, "Post not found")
		return
	}

	if kind == models.EngagementSave {
		c.JSON(http.StatusOK, gin.H{
			"isSaved":        out.Active,
			"saves":          out.Count,
			"formattedSaves": out.Formatted,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isLiked":        out.Active,
		"likes":          out.Count,
		"formattedLikes": out.Formatted,
	})
}

// GetPostInteraction reports the actor's like/save state for a post.
func (h *PostHandler) GetPostInteraction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	status, err := h.engagement.Status(ctx, actor, id)
	if err != nil {
		failFor(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusOK, status)
}

// respondWithPost projects a post for the response, resolving creator
// and image metadata.
func (h *PostHandler) respondWithPost(ctx context.Context, c *gin.Context, status int, post *models.Post, viewer *primitive.ObjectID) {
	creator, err := h.users.FindByID(ctx, post.Creator)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusInternalServerError, "Internal", "Database error")
		return
	}

	var images []models.Image
	if len(post.Images) > 0 {
		images, err = h.images.FindMetaByIDs(ctx, post.Images)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Internal", "Database error")
			return
		}
	}

	c.JSON(status, engagement.ProjectPost(post, creator, images, viewer))
}
