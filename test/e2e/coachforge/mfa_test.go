package coachforge_test

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/pkg/coachsdk"
)

func TestCoachMFA(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := coachsdk.NewClient(baseURL)
	coachToken, _ := bootstrapCoach(t, client)

	// Enroll and enable MFA.
	enroll, err := client.EnrollTOTP(ctx, coachToken)
	require.NoError(t, err)
	require.NotEmpty(t, enroll.Secret)

	code, err := totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, client.VerifyTOTP(ctx, coachToken, code))

	// Password alone no longer logs in.
	_, err = client.LoginCoach(ctx, coachsdk.CoachLoginRequest{
		Email:    coachEmail,
		Password: coachPassword,
	})
	require.Error(t, err)
	assert.True(t, coachsdk.IsCode(err, coachsdk.ErrorCodeMFARequired), "got %v", err)

	// Password plus a fresh code does.
	code, err = totp.GenerateCode(enroll.Secret, time.Now())
	require.NoError(t, err)
	login, err := client.LoginCoach(ctx, coachsdk.CoachLoginRequest{
		Email:    coachEmail,
		Password: coachPassword,
		TOTPCode: code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
}
