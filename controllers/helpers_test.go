package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trovi/trovi-api/config"
	"github.com/trovi/trovi-api/controllers"
	"github.com/trovi/trovi-api/initializers"
	"github.com/trovi/trovi-api/models"
	"github.com/trovi/trovi-api/routes"
	"github.com/trovi/trovi-api/utils"
)

const testJWTSecret = "test-secret"

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (f *fakeMailer) sentTo(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.sent {
		if m.To == email {
			n++
		}
	}
	return n
}

type fakeStorage struct {
	mu       sync.Mutex
	uploaded int
	deleted  []string
}

func (f *fakeStorage) Upload(_ context.Context, file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded++
	return "https://cdn.example.com/" + file.Filename, nil
}

func (f *fakeStorage) Delete(_ context.Context, fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeStorage) deletedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	mailer *fakeMailer
	store  *fakeStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	zap.ReplaceGlobals(zap.NewNop())

	// A named in-memory database so every pooled connection sees the same
	// tables, while separate tests stay isolated.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, initializers.SyncDatabase(db))

	cfg := &config.Config{
		JWTSecret:  testJWTSecret,
		AppBaseURL: "http://localhost:4000",
	}
	mailer := &fakeMailer{}
	store := &fakeStorage{}
	activity := &utils.ActivityLogger{DB: db}

	router := gin.New()
	routes.DefaultRoutes(router)
	routes.AuthRoutes(router, controllers.NewAuthController(db, mailer, cfg))
	routes.AdminRoutes(router, controllers.NewAdminController(db, store, activity), cfg.JWTSecret)
	routes.OrderRoutes(router, controllers.NewCustomerController(db, activity), cfg.JWTSecret)
	routes.SharedRoutes(router, controllers.NewSharedController(db, store, activity), cfg.JWTSecret)
	routes.NewsLetterRoutes(router, controllers.NewNewsLetterController(db))

	return &testEnv{router: router, db: db, mailer: mailer, store: store}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) multipartRequest(t *testing.T, method, path string, fields map[string]string, fileField, fileName, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createUser(t *testing.T, fullName, email, password, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FullName: fullName,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *testEnv) signToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   user.ID,
		"fullName": user.FullName,
		"email":    user.Email,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// waitForActivities polls until the user's audit trail reaches the expected
// size. Activity writes are fire-and-forget, so tests cannot read the table
// synchronously.
func (e *testEnv) waitForActivities(t *testing.T, userID uint, want int64) []models.UserActivity {
	t.Helper()

	require.Eventually(t, func() bool {
		var count int64
		e.db.Model(&models.UserActivity{}).Where("user_id = ?", userID).Count(&count)
		return count == want
	}, 2*time.Second, 10*time.Millisecond)

	var activities []models.UserActivity
	require.NoError(t, e.db.Where("user_id = ?", userID).Find(&activities).Error)
	return activities
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func mustJSON(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]any {
	t.Helper()
	require.Equal(t, status, rec.Code, "unexpected status, body: %s", rec.Body.String())
	return decodeBody(t, rec)
}
