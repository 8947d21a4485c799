package engagement

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/models"
)

// CreatorView is the public subset of the creating user embedded in a
// post view.
type CreatorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ImageView is image metadata without the blob payload.
type ImageView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        string    `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostView is the read-facing shape of a post. IsLiked and IsSaved are
// nil, and absent from the JSON, when there is no viewer; absent and
// false are distinct states to callers.
type PostView struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Slug           string       `json:"slug"`
	Description    string       `json:"description"`
	Creator        *CreatorView `json:"creator,omitempty"`
	Images         []ImageView  `json:"images"`
	Likes          int          `json:"likes"`
	Saves          int          `json:"saves"`
	FormattedLikes string       `json:"formattedLikes"`
	FormattedSaves string       `json:"formattedSaves"`
	IsLiked        *bool        `json:"isLiked,omitempty"`
	IsSaved        *bool        `json:"isSaved,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ProjectPost derives the read view of a post for an optional viewer.
// creator may be nil when the owning account is gone. images carries the
// metadata for whichever of the post's image refs still resolve; the
// post's own ordering wins.
func ProjectPost(post *models.Post, creator *models.User, images []models.Image, viewer *primitive.ObjectID) PostView {
	view := PostView{
		ID:             post.ID.Hex(),
		Title:          post.Title,
		Slug:           post.Slug,
		Description:    post.Description,
		Images:         projectImages(post, images),
		Likes:          len(post.Likes),
		Saves:          len(post.Saves),
		FormattedLikes: FormatEngagement(len(post.Likes), "like"),
		FormattedSaves: FormatEngagement(len(post.Saves), "save"),
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}

	if creator != nil {
		view.Creator = &CreatorView{
			ID:       creator.ID.Hex(),
			Username: creator.Username,
			Email:    creator.Email,
		}
	}

	if viewer != nil {
		liked := containsID(post.Likes, *viewer)
		saved := containsID(post.Saves, *viewer)
		view.IsLiked = &liked
		view.IsSaved = &saved
	}

	return view
}

func projectImages(post *models.Post, images []models.Image) []ImageView {
	byID := make(map[primitive.ObjectID]models.Image, len(images))
	for _, img := range images {
		byID[img.ID] = img
	}

	views := make([]ImageView, 0, len(post.Images))
	for _, id := range post.Images {
		img, ok := byID[id]
		if !ok {
			// Dangling ref, the image was deleted out from under the post.
			continue
		}
		views = append(views, ImageView{
			ID:          img.ID.Hex(),
			Name:        img.Name,
			ContentType: img.ContentType,
			Size:        img.Size,
			CreatedAt:   img.CreatedAt,
			UpdatedAt:   img.UpdatedAt,
		})
	}
	return views
}
