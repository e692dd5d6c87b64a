package domain

import "time"

type Coach struct {
	ID           string
	Email        string // unique, stored lowercased and trimmed
	Name         string
	PasswordHash string     // argon2id encoded
	MFASecret    *string    // TOTP secret (nullable, base32 encoded)
	MFAEnabled   *time.Time // timestamp when MFA was enabled (nullable)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
