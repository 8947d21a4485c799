package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/models"
	"snapfeed/store"
)

const maxImageBytes = 5 << 20

// humanSize renders a byte count the way uploads record it: below 1 KiB
// as "NB", below 1 MiB as two-decimal KB, otherwise two-decimal MB.
func humanSize(bytes int) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%dB", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.2fMB", float64(bytes)/(1024*1024))
	}
}

type ImageHandler struct {
	images *store.ImageStore
}

func NewImageHandler(images *store.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

// UploadImage stores a multipart image as a Mongo-resident blob.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", "Please provide an image file")
		return
	}
	if file.Size > maxImageBytes {
		fail(c, http.StatusBadRequest, "InvalidInput", "Image exceeds the 5MB limit")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		fail(c, http.StatusBadRequest, "InvalidInput", "Only image files are allowed")
		return
	}

	src, err := file.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal", "Failed to read image")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Internal", "Failed to read image")
		return
	}

	img := &models.Image{
		ID:          primitive.NewObjectID(),
		Name:        file.Filename,
		Data:        data,
		ContentType: contentType,
		Size:        humanSize(len(data)),
	}

	ctx, cancel := opContext()
	defer cancel()

	if err := h.images.Insert(ctx, img); err != nil {
		log.Printf("UploadImage error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Failed to store image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          img.ID.Hex(),
		"name":        img.Name,
		"contentType": img.ContentType,
		"size":        img.Size,
		"createdAt":   img.CreatedAt,
	})
}

func (h *ImageHandler) GetImages(c *gin.Context) {
	ctx, cancel := opContext()
	defer cancel()

	images, err := h.images.FindMeta(ctx)
	if err != nil {
		log.Printf("GetImages error: %v", err)
		fail(c, http.StatusInternalServerError, "Internal", "Failed to fetch images")
		return
	}

	c.JSON(http.StatusOK, images)
}

// GetImage serves the raw bytes with the stored content type.
func (h *ImageHandler) GetImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	img, err := h.images.FindByID(ctx, id)
	if err != nil {
		failFor(c, err, "Image not found")
		return
	}

	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// DeleteImage removes the blob. Posts referencing the image are left
// alone; projections skip refs that no longer resolve.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := opContext()
	defer cancel()

	if err := h.images.Delete(ctx, id); err != nil {
		failFor(c, err, "Image not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
