package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy-app/travelbuddy-backend/internal/storage"
)

func newOTPService(t *testing.T, policy OTPPolicy) (*OTPService, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewOTPService(store, policy), store
}

func TestIssueRequiresEmail(t *testing.T) {
	svc, _ := newOTPService(t, OTPPolicy{})

	_, err := svc.Issue("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIssueStoresSixDigitCode(t *testing.T) {
	svc, store := newOTPService(t, OTPPolicy{})

	code, err := svc.Issue("a@b.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	challenge, err := store.GetChallenge("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, code, challenge.Code)
	assert.Nil(t, challenge.ExpiresAt, "no expiry policy means no expiry")
}

func TestReissueInvalidatesPreviousCode(t *testing.T) {
	svc, _ := newOTPService(t, OTPPolicy{})

	first, err := svc.Issue("a@b.com")
	require.NoError(t, err)
	second, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	if first != second {
		ok, _ := svc.Verify("a@b.com", first)
		assert.False(t, ok, "old code must be dead after reissue")
	}
	ok, _ := svc.Verify("a@b.com", second)
	assert.True(t, ok)
}

func TestVerifyIsSingleUse(t *testing.T) {
	svc, _ := newOTPService(t, OTPPolicy{})

	code, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	ok, msg := svc.Verify("a@b.com", code)
	require.True(t, ok)
	assert.Equal(t, "OTP verified successfully", msg)

	ok, msg = svc.Verify("a@b.com", code)
	assert.False(t, ok, "code must be consumed on success")
	assert.Equal(t, "Invalid OTP", msg)
}

func TestVerifyWithoutChallengeFails(t *testing.T) {
	svc, _ := newOTPService(t, OTPPolicy{})

	for _, code := range []string{"", "000000", "123456", "999999"} {
		ok, msg := svc.Verify("nobody@b.com", code)
		assert.False(t, ok)
		assert.Equal(t, "Invalid OTP", msg)
	}
}

func TestWrongCodeLeavesChallengeIntact(t *testing.T) {
	svc, _ := newOTPService(t, OTPPolicy{})

	code, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	// Unlimited retries by default
	for i := 0; i < 10; i++ {
		ok, msg := svc.Verify("a@b.com", "000000")
		require.False(t, ok)
		require.Equal(t, "Invalid OTP", msg)
	}

	ok, _ := svc.Verify("a@b.com", code)
	assert.True(t, ok, "wrong guesses must not invalidate the pending code")
}

func TestAttemptPolicyLocksOut(t *testing.T) {
	svc, store := newOTPService(t, OTPPolicy{MaxAttempts: 3})

	code, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ok, _ := svc.Verify("a@b.com", "000000")
		require.False(t, ok)
	}

	ok, msg := svc.Verify("a@b.com", code)
	assert.False(t, ok, "correct code must be rejected after the cap")
	assert.Equal(t, "Too many attempts. Request a new OTP", msg)

	_, err = store.GetChallenge("a@b.com")
	assert.Error(t, err, "exhausted challenge must be deleted")
}

func TestExpiryPolicy(t *testing.T) {
	svc, store := newOTPService(t, OTPPolicy{Expiry: -time.Minute})

	code, err := svc.Issue("a@b.com")
	require.NoError(t, err)

	ok, msg := svc.Verify("a@b.com", code)
	assert.False(t, ok)
	assert.Equal(t, "OTP expired", msg)

	_, err = store.GetChallenge("a@b.com")
	assert.Error(t, err, "expired challenge must be deleted")
}

func TestChallengesAreIndependentPerEmail(t *testing.T) {
	svc, _ := newOTPService(t, OTPPolicy{})

	codeA, err := svc.Issue("a@b.com")
	require.NoError(t, err)
	codeB, err := svc.Issue("c@d.com")
	require.NoError(t, err)

	ok, _ := svc.Verify("a@b.com", codeA)
	assert.True(t, ok)
	ok, _ = svc.Verify("c@d.com", codeB)
	assert.True(t, ok)
}
