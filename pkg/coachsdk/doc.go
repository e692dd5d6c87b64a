// Package coachsdk is a small Go client for the CoachForge HTTP API.
// It is used by the end-to-end tests and is suitable for external
// tooling that needs to drive the invite and login flows.
package coachsdk
