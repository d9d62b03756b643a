package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a news article stored in the content store
type Article struct {
	ID              string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt         string    `gorm:"type:text;not null" json:"excerpt"`
	Content         string    `gorm:"type:longtext;not null" json:"content"`
	Category        Category  `gorm:"type:varchar(32);index;not null" json:"category"`
	Published       bool      `gorm:"index;not null" json:"published"`
	Featured        bool      `gorm:"not null" json:"featured"`
	Trending        bool      `gorm:"not null" json:"trending"`
	ImageURL        *string   `gorm:"type:varchar(1024)" json:"image_url"`
	SourceURL       *string   `gorm:"type:varchar(1024)" json:"source_url"`
	SourceReference *string   `gorm:"type:varchar(255)" json:"source_reference"`
	AuthorID        string    `gorm:"type:varchar(64);index" json:"author_id"`
	ViewCount       int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// BeforeCreate assigns a UUID if none is set
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// ArticleInput is the editor form. It carries the validation bounds every
// write has to pass before it reaches the store.
type ArticleInput struct {
	Title           string `json:"title" validate:"required,min=10,max=200"`
	Excerpt         string `json:"excerpt" validate:"required,min=20,max=500"`
	Content         string `json:"content" validate:"required,min=100"`
	Category        string `json:"category" validate:"required,category"`
	SourceURL       string `json:"source_url" validate:"omitempty,url"`
	SourceReference string `json:"source_reference" validate:"max=200"`
	ImageURL        string `json:"image_url" validate:"omitempty,url"`
	Published       bool   `json:"published"`
	Featured        bool   `json:"featured"`
	Trending        bool   `json:"trending"`
}

// Normalize trims the text fields and canonicalizes the category.
func (in *ArticleInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = string(NormalizeCategory(in.Category))
	in.SourceURL = strings.TrimSpace(in.SourceURL)
	in.SourceReference = strings.TrimSpace(in.SourceReference)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (in *ArticleInput) Validate() error {
	return validate.Struct(in)
}

// Apply copies the form onto an article. Empty optional fields become NULL.
func (in *ArticleInput) Apply(a *Article, authorID string) {
	a.Title = in.Title
	a.Excerpt = in.Excerpt
	a.Content = in.Content
	a.Category = Category(in.Category)
	a.SourceURL = nullableString(in.SourceURL)
	a.SourceReference = nullableString(in.SourceReference)
	a.ImageURL = nullableString(in.ImageURL)
	a.Published = in.Published
	a.Featured = in.Featured
	a.Trending = in.Trending
	if authorID != "" {
		a.AuthorID = authorID
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
