package models

import "time"

// Day is one of the eight fixed greeting-page categories.
type Day string

const (
	DayRose      Day = "rose"
	DayPropose   Day = "propose"
	DayChocolate Day = "chocolate"
	DayTeddy     Day = "teddy"
	DayPromise   Day = "promise"
	DayHug       Day = "hug"
	DayKiss      Day = "kiss"
	DayValentine Day = "valentine"
)

// Days lists all valid days in display order.
var Days = []Day{
	DayRose, DayPropose, DayChocolate, DayTeddy,
	DayPromise, DayHug, DayKiss, DayValentine,
}

// ParseDay validates a day path parameter against the fixed enumeration.
func ParseDay(s string) (Day, bool) {
	for _, d := range Days {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// UserProfile is a creator's account record
type UserProfile struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	PartnerName string    `json:"partnerName"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public returns the profile shape safe for unauthenticated reads
// (no email, no provider user id).
func (p *UserProfile) Public() PublicProfile {
	role := p.Role
	if role == "" {
		role = RoleMember
	}
	return PublicProfile{
		Username:    p.Username,
		Role:        role,
		PartnerName: p.PartnerName,
		Message:     p.Message,
	}
}

// PublicProfile is the redacted profile served on public pages
type PublicProfile struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	PartnerName string `json:"partnerName"`
	Message     string `json:"message"`
}

// PhotoRecord is a single uploaded photo for a (username, day) scope.
// ID is the upload timestamp in milliseconds.
type PhotoRecord struct {
	ID         int64     `json:"id"`
	Path       string    `json:"path"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DayContent holds the editor fields for one greeting page
// (heroTitle, heroSubtitle, quote, songUrl, customMessage, ctaLabel,
// hideNoButton). Updates are partial merges, so it stays a free-form map.
type DayContent map[string]interface{}

// AdminUserSummary is one row of the admin user listing
type AdminUserSummary struct {
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	PartnerName string    `json:"partnerName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicProfileView is the full public page payload: redacted profile
// plus photos for every day with freshly signed URLs.
type PublicProfileView struct {
	Profile PublicProfile         `json:"profile"`
	Photos  map[Day][]PhotoRecord `json:"photos"`
}

// FeaturedView is the payload for the featured-creator short link,
// scoped to a single day.
type FeaturedView struct {
	Username   string        `json:"username"`
	Profile    PublicProfile `json:"profile"`
	DayContent DayContent    `json:"dayContent"`
	Photos     []PhotoRecord `json:"photos"`
}
