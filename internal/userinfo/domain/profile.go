package domain

import (
	"time"

	"github.com/aussiebroadwan/idclaims/pkg/claims"
)

// Profile is the claim set held for one subject. Claims only ever holds
// standard claims and always carries sub equal to Subject.
type Profile struct {
	Subject   string     `json:"sub"`
	Claims    claims.Set `json:"claims"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
