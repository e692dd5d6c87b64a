package domain

import "time"

// Athlete is a training-managed person owned by a coach. CoachForge's
// invite core only reads athletes; the wider CRUD surface lives outside
// this service.
type Athlete struct {
	ID        string
	CoachID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
