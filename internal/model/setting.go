package model

// Setting is a generic key/value row. Only the banner key is read today.
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Value string `gorm:"type:text" json:"value"`
}

// SettingBanner is the single key the storefront banner is stored under.
const SettingBanner = "banner"
