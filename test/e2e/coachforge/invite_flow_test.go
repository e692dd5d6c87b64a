package coachforge_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/pkg/coachsdk"
)

func tokenFromInviteURL(t *testing.T, inviteURL string) string {
	t.Helper()
	idx := strings.LastIndex(inviteURL, "/invite/")
	require.NotEqual(t, -1, idx, "invite URL has unexpected shape: %s", inviteURL)
	return inviteURL[idx+len("/invite/"):]
}

// TestInviteFlow walks the full onboarding path: bootstrap, issue an
// invite, accept it, and log in as the activated athlete.
func TestInviteFlow(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := coachsdk.NewClient(baseURL)
	coachToken, athleteIDs := bootstrapCoach(t, client, "Alex Runner")
	athleteID := athleteIDs[0]

	// Athlete cannot log in before accepting an invite.
	_, err := client.LoginAthlete(ctx, coachsdk.AthleteLoginRequest{
		Email:    "alex@example.com",
		Password: "AthletePass1!",
	})
	require.Error(t, err)

	// Coach issues an invite.
	invite, err := client.IssueInvite(ctx, coachToken, athleteID)
	require.NoError(t, err)
	rawToken := tokenFromInviteURL(t, invite.InviteURL)

	// Athlete accepts it.
	require.NoError(t, client.AcceptInvite(ctx, coachsdk.AcceptInviteRequest{
		Token:    rawToken,
		Email:    "alex@example.com",
		Password: "AthletePass1!",
	}))

	// The token is single use.
	err = client.AcceptInvite(ctx, coachsdk.AcceptInviteRequest{
		Token:    rawToken,
		Email:    "other@example.com",
		Password: "OtherPass1!",
	})
	require.Error(t, err)
	assert.True(t, coachsdk.IsCode(err, coachsdk.ErrorCodeTokenUsed), "got %v", err)

	// Activated athlete can now log in and out.
	login, err := client.LoginAthlete(ctx, coachsdk.AthleteLoginRequest{
		Email:    "alex@example.com",
		Password: "AthletePass1!",
	})
	require.NoError(t, err)
	require.NoError(t, client.Logout(ctx, login.Token))

	// The revoked session no longer works.
	_, err = client.IssueInvite(ctx, login.Token, athleteID)
	require.Error(t, err)
}

// TestInviteSupersede checks that reissuing kills the outstanding invite.
func TestInviteSupersede(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := coachsdk.NewClient(baseURL)
	coachToken, athleteIDs := bootstrapCoach(t, client, "Sam Lifter")
	athleteID := athleteIDs[0]

	first, err := client.IssueInvite(ctx, coachToken, athleteID)
	require.NoError(t, err)
	second, err := client.IssueInvite(ctx, coachToken, athleteID)
	require.NoError(t, err)

	// The first token was superseded and reads as expired.
	err = client.AcceptInvite(ctx, coachsdk.AcceptInviteRequest{
		Token:    tokenFromInviteURL(t, first.InviteURL),
		Email:    "sam@example.com",
		Password: "AthletePass1!",
	})
	require.Error(t, err)
	assert.True(t, coachsdk.IsCode(err, coachsdk.ErrorCodeTokenExpired), "got %v", err)

	// The replacement still redeems.
	require.NoError(t, client.AcceptInvite(ctx, coachsdk.AcceptInviteRequest{
		Token:    tokenFromInviteURL(t, second.InviteURL),
		Email:    "sam@example.com",
		Password: "AthletePass1!",
	}))
}

// TestInviteIssueErrors covers the issuance error surface over HTTP.
func TestInviteIssueErrors(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := coachsdk.NewClient(baseURL)
	coachToken, athleteIDs := bootstrapCoach(t, client, "Jo Cyclist")
	athleteID := athleteIDs[0]

	t.Run("requires authentication", func(t *testing.T) {
		_, err := client.IssueInvite(ctx, "", athleteID)
		require.Error(t, err)
		apiErr, ok := err.(*coachsdk.APIError)
		require.True(t, ok)
		assert.Equal(t, 401, apiErr.StatusCode)
	})

	t.Run("unknown athlete is 404", func(t *testing.T) {
		_, err := client.IssueInvite(ctx, coachToken, "01JUNKJUNKJUNKJUNKJUNKJUNK")
		require.Error(t, err)
		assert.True(t, coachsdk.IsCode(err, coachsdk.ErrorCodeNotFound), "got %v", err)
	})

	t.Run("activated athlete is 409", func(t *testing.T) {
		invite, err := client.IssueInvite(ctx, coachToken, athleteID)
		require.NoError(t, err)
		require.NoError(t, client.AcceptInvite(ctx, coachsdk.AcceptInviteRequest{
			Token:    tokenFromInviteURL(t, invite.InviteURL),
			Email:    "jo@example.com",
			Password: "AthletePass1!",
		}))

		_, err = client.IssueInvite(ctx, coachToken, athleteID)
		require.Error(t, err)
		assert.True(t, coachsdk.IsCode(err, coachsdk.ErrorCodeConflict), "got %v", err)
	})

	t.Run("athlete session cannot issue invites", func(t *testing.T) {
		login, err := client.LoginAthlete(ctx, coachsdk.AthleteLoginRequest{
			Email:    "jo@example.com",
			Password: "AthletePass1!",
		})
		require.NoError(t, err)

		_, err = client.IssueInvite(ctx, login.Token, athleteID)
		require.Error(t, err)
		assert.True(t, coachsdk.IsCode(err, coachsdk.ErrorCodeForbidden), "got %v", err)
	})
}
