package dto

import "github.com/noah-isme/institute-api/internal/models"

// CreateGalleryImageRequest adds an uploaded image to the gallery.
type CreateGalleryImageRequest struct {
	URL      string  `json:"url" validate:"required,max=1000"`
	Caption  *string `json:"caption" validate:"omitempty,max=300"`
	Category *string `json:"category" validate:"omitempty,max=100"`
	Order    int     `json:"order" validate:"gte=0"`
}

// GalleryView is the public gallery with its distinct categories in first-seen order.
type GalleryView struct {
	Categories []string              `json:"categories"`
	Images     []models.GalleryImage `json:"images"`
}
