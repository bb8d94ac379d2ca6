package models

const (
	TypeSSH         = "SSH"
	TypeVLESS       = "VLESS"
	TypeTrojan      = "TROJAN"
	TypeSOCKS       = "SOCKS"
	TypeShadowsocks = "SHADOWSOCKS"
	TypeMS          = "MS"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var AccountTypes = []string{TypeSSH, TypeVLESS, TypeTrojan, TypeSOCKS, TypeShadowsocks, TypeMS}

// VpsAccount is a stored connection profile. SSH accounts carry the
// credential group (ip/username/password/expiry); every other type carries a
// single opaque config string. Exactly one of the two is populated at any
// time, consistent with Type.
type VpsAccount struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	Type       string `gorm:"size:16;index;not null" json:"type"`
	ServerName string `gorm:"size:255;not null" json:"server_name"`
	Status     string `gorm:"size:16;not null;default:active" json:"status"`

	IPAddress  string `gorm:"size:255" json:"ip_address,omitempty"`
	Username   string `gorm:"size:128" json:"username,omitempty"`
	Password   string `gorm:"size:255" json:"password,omitempty"` // plaintext, masked only in the UI
	ExpiryDate string `gorm:"size:32" json:"expiry_date,omitempty"`

	Config string `gorm:"size:2048" json:"config,omitempty"`

	// epoch millis, matching the wire format the dashboard renders
	CreatedAt int64 `gorm:"not null;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:milli" json:"updatedAt"`
}

func ValidAccountType(t string) bool {
	for _, v := range AccountTypes {
		if v == t {
			return true
		}
	}
	return false
}
