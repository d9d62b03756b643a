package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Placement is where an advertisement is rendered
type Placement string

const (
	PlacementSidebar Placement = "sidebar"
	PlacementBanner  Placement = "banner"
	PlacementInline  Placement = "inline"
)

var Placements = []Placement{PlacementSidebar, PlacementBanner, PlacementInline}

func PlacementValues() []string {
	values := make([]string, len(Placements))
	for i, p := range Placements {
		values[i] = string(p)
	}
	return values
}

func (p Placement) IsValid() bool {
	for _, known := range Placements {
		if p == known {
			return true
		}
	}
	return false
}

// Advertisement is an ad slot with its tracking counters
type Advertisement struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	LinkURL     string    `gorm:"type:varchar(1024);not null" json:"link_url"`
	Placement   Placement `gorm:"type:varchar(16);index;not null" json:"placement"`
	Active      bool      `gorm:"index;not null" json:"active"`
	Impressions int64     `gorm:"not null;default:0" json:"impressions"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the Advertisement model
func (Advertisement) TableName() string {
	return "advertisements"
}

// BeforeCreate assigns a UUID if none is set
func (a *Advertisement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// CTR returns clicks/impressions. It is nil while there are no impressions.
func (a Advertisement) CTR() *float64 {
	if a.Impressions <= 0 {
		return nil
	}
	ctr := float64(a.Clicks) / float64(a.Impressions)
	return &ctr
}

// AdvertisementInput is the admin form for a new ad.
type AdvertisementInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	LinkURL     string `json:"link_url" validate:"required,url"`
	Placement   string `json:"placement" validate:"required,placement"`
	Active      *bool  `json:"active"`
}

func (in *AdvertisementInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.LinkURL = strings.TrimSpace(in.LinkURL)
	in.Placement = strings.ToLower(strings.TrimSpace(in.Placement))
	if in.Placement == "" {
		in.Placement = string(PlacementSidebar)
	}
}

func (in *AdvertisementInput) Validate() error {
	return validate.Struct(in)
}

// ToModel builds a new ad. Ads are active unless the form says otherwise.
func (in *AdvertisementInput) ToModel() *Advertisement {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return &Advertisement{
		Title:       in.Title,
		Description: in.Description,
		LinkURL:     in.LinkURL,
		Placement:   Placement(in.Placement),
		Active:      active,
	}
}
