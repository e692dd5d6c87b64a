package domain

import "time"

// AthleteCredential is the 1:1 login record for an athlete. It is
// created (or overwritten) exclusively by invite acceptance; a nil
// ActivatedAt means the athlete cannot log in yet.
type AthleteCredential struct {
	AthleteID    string // owner, primary key
	Email        string // unique, stored lowercased and trimmed
	PasswordHash string // argon2id encoded
	ActivatedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
