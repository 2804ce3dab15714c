package model

import "time"

// KindAWS is the credential family tag for AWS access keys. Kind is an open
// string so other provider families can be added without a schema change.
const KindAWS = "AWS"

// Profile is a named credential entry for one account. Name is the business
// key and is unique across the store. At most one profile is active at a time.
type Profile struct {
	ID              int64
	Name            string
	Kind            string
	AccessKey       string
	SecretKey       string
	Region          string
	CreatedAt       time.Time
	LastActivatedAt time.Time // Zero value means never activated.
	IsActive        bool
}

// EverActivated reports whether the profile has been activated at least once.
func (p Profile) EverActivated() bool {
	return !p.LastActivatedAt.IsZero()
}
