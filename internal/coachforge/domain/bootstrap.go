package domain

// BootstrapData seeds the very first coach account, optionally with the
// coach's initial athlete roster. Athlete management is otherwise
// outside this service.
type BootstrapData struct {
	CoachEmail    string
	CoachName     string
	CoachPassword string
	AthleteNames  []string
}

// BootstrapResult reports what bootstrap created.
type BootstrapResult struct {
	CoachID    string
	AthleteIDs []string
}
