package models

import (
	"gorm.io/gorm"
)

// Track is a stored audio track that analysis results attach to.
type Track struct {
	gorm.Model
	Title     string `json:"title"`
	SourceURL string `json:"source_url,omitempty" gorm:"index"`
}
