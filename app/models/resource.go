package models

import "time"

const (
	RESOURCE_CATEGORY_LIGHTING   = "lighting"
	RESOURCE_CATEGORY_SOUND      = "sound"
	RESOURCE_CATEGORY_STAGE_MGMT = "stage_management"
	RESOURCE_CATEGORY_SCHEDULING = "scheduling"
)

const (
	ACCESS_LEVEL_FREE = "free"
	ACCESS_LEVEL_PRO  = "pro"
)

// Resource is a downloadable guide/template in the member library. Pro-level
// resources are only served to users whose subscription status grants Pro
// access; the file itself lives in S3 under FileKey.
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(32);not null;index" json:"category"`
	AccessLevel string    `gorm:"type:varchar(10);not null;default:'free';index" json:"access_level"`
	FileKey     string    `gorm:"type:varchar(512);default:''" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsPro reports whether the resource requires Pro access.
func (r *Resource) IsPro() bool {
	return r.AccessLevel == ACCESS_LEVEL_PRO
}
