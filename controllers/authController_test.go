package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trovi/trovi-api/models"
)

func registerBody(fullName, email, password string) map[string]any {
	return map[string]any{"fullName": fullName, "email": email, "password": password}
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/auth/register", registerBody("Test User", "test@example.com", "Str0ng!pass"), "")
	body := mustJSON(t, rec, http.StatusCreated)

	assert.Equal(t, "user created, kindly check your email to verify it", body["message"])
	assert.NotEmpty(t, body["token"])

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.False(t, user.IsEmailVerified)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, models.PurposeVerifyEmail, user.AuthPurpose)
	assert.Equal(t, body["token"], user.AuthToken)
	assert.NotEqual(t, "Str0ng!pass", user.Password)
	assert.Equal(t, models.DefaultProfileImg, user.ProfileImg)
	assert.Equal(t, 1, env.mailer.sentTo("test@example.com"))
}

func TestRegisterRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing full name", registerBody("", "a@example.com", "Str0ng!pass")},
		{"missing email", registerBody("A", "", "Str0ng!pass")},
		{"missing password", registerBody("A", "a@example.com", "")},
		{"invalid email", registerBody("A", "not-an-email", "Str0ng!pass")},
		{"too short", registerBody("A", "a@example.com", "S0r!t")},
		{"no uppercase", registerBody("A", "a@example.com", "str0ng!pass")},
		{"no digit", registerBody("A", "a@example.com", "Strong!pass")},
		{"no symbol", registerBody("A", "a@example.com", "Str0ngpass")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/v1/auth/register", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "no user record may exist after failed registrations")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Existing", "dup@example.com", "Str0ng!pass", models.RoleCustomer)

	rec := env.request(t, http.MethodPost, "/v1/auth/register", registerBody("Other", "dup@example.com", "Str0ng!pass"), "")
	body := mustJSON(t, rec, http.StatusBadRequest)
	assert.Equal(t, "user already exists with email", body["message"])

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/auth/register", registerBody("Test User", "verify@example.com", "Str0ng!pass"), "")
	body := mustJSON(t, rec, http.StatusCreated)
	token := body["token"].(string)

	rec = env.request(t, http.MethodGet, "/v1/auth/verify-email/"+token, nil, "")
	body = mustJSON(t, rec, http.StatusOK)
	assert.Equal(t, "Email verified successfully!", body["message"])

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "verify@example.com").First(&user).Error)
	assert.True(t, user.IsEmailVerified)
	assert.Empty(t, user.AuthToken)
	assert.Empty(t, user.AuthPurpose)

	// Second use of the same token must find nothing.
	rec = env.request(t, http.MethodGet, "/v1/auth/verify-email/"+token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/v1/auth/verify-email/no-such-token", nil, "")
	body := mustJSON(t, rec, http.StatusNotFound)
	assert.Equal(t, "the user does not exist", body["message"])
}

func TestLoginFailureParity(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Login User", "login@example.com", "Str0ng!pass", models.RoleCustomer)

	// Unknown email and wrong password both answer 404, never 401.
	rec := env.request(t, http.MethodPost, "/v1/auth/login", map[string]any{"email": "nobody@example.com", "password": "Str0ng!pass"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodPost, "/v1/auth/login", map[string]any{"email": "login@example.com", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginSucceedsWithoutEmailVerification(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Login User", "login2@example.com", "Str0ng!pass", models.RoleCustomer)
	require.False(t, user.IsEmailVerified)

	rec := env.request(t, http.MethodPost, "/v1/auth/login", map[string]any{"email": "login2@example.com", "password": "Str0ng!pass"}, "")
	body := mustJSON(t, rec, http.StatusOK)

	assert.Equal(t, "login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	details := body["userDetails"].(map[string]any)
	assert.Equal(t, "Login User", details["fullName"])
	assert.Equal(t, "login2@example.com", details["email"])
	assert.Equal(t, models.RoleCustomer, details["role"])
	assert.NotContains(t, details, "password")
}

func TestForgotPasswordFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Reset User", "reset@example.com", "Str0ng!pass", models.RoleCustomer)

	rec := env.request(t, http.MethodPost, "/v1/auth/forgot-password", map[string]any{"email": "reset@example.com"}, "")
	body := mustJSON(t, rec, http.StatusCreated)

	token := body["token"].(string)
	code := body["code"].(string)
	require.NotEmpty(t, token)
	require.Len(t, code, 4)

	var resetToken models.Token
	require.NoError(t, env.db.Where("token = ?", token).First(&resetToken).Error)
	assert.Equal(t, user.ID, resetToken.UserID)
	assert.Equal(t, models.PurposeSendCodeToEmail, resetToken.AuthPurpose)
	assert.Equal(t, code, resetToken.ResetPasswordCode)

	// Wrong code is rejected, right code echoes the token back.
	rec = env.request(t, http.MethodPost, "/v1/auth/confirm-reset-password-code", map[string]any{"token": token, "code": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPost, "/v1/auth/confirm-reset-password-code", map[string]any{"token": token, "code": code}, "")
	body = mustJSON(t, rec, http.StatusOK)
	assert.Equal(t, token, body["token"])
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/auth/forgot-password", map[string]any{"email": "ghost@example.com"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodPost, "/v1/auth/forgot-password", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgotPasswordAllowsMultipleOutstandingTokens(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Reset User", "multi@example.com", "Str0ng!pass", models.RoleCustomer)

	env.request(t, http.MethodPost, "/v1/auth/forgot-password", map[string]any{"email": "multi@example.com"}, "")
	env.request(t, http.MethodPost, "/v1/auth/forgot-password", map[string]any{"email": "multi@example.com"}, "")

	var count int64
	env.db.Model(&models.Token{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestResetPasswordConsumesToken(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Reset User", "consume@example.com", "Str0ng!pass", models.RoleCustomer)

	rec := env.request(t, http.MethodPost, "/v1/auth/forgot-password", map[string]any{"email": "consume@example.com"}, "")
	body := mustJSON(t, rec, http.StatusCreated)
	token := body["token"].(string)
	code := body["code"].(string)

	// A weak password is accepted here: the strength policy applies only to
	// registration.
	rec = env.request(t, http.MethodPost, "/v1/auth/reset-password", map[string]any{"token": token, "newPassword": "weakpass"}, "")
	body = mustJSON(t, rec, http.StatusOK)
	assert.Equal(t, "password reset was successful", body["message"])

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "consume@example.com").First(&user).Error)
	assert.NotEmpty(t, user.AuthToken)

	rec = env.request(t, http.MethodPost, "/v1/auth/login", map[string]any{"email": "consume@example.com", "password": "weakpass"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The reset record is gone: neither the code nor the token work again.
	rec = env.request(t, http.MethodPost, "/v1/auth/confirm-reset-password-code", map[string]any{"token": token, "code": code}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodPost, "/v1/auth/reset-password", map[string]any{"token": token, "newPassword": "Another1!"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/auth/reset-password", map[string]any{"token": "nope", "newPassword": "Whatever1!"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
