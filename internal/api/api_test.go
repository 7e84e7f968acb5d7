package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"f1_predictions/internal/domain"
	"f1_predictions/internal/middleware"
	"f1_predictions/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection would otherwise get its own :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.User{}, &domain.Race{}, &domain.Prediction{}, &domain.RaceResult{}); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

// newTestRouter wires the handlers under test behind the real JWT middleware.
// Redis-backed handlers are not registered here; they are exercised against a
// live stack, not in unit tests.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	jwtAuth := middleware.JWTAuthMiddleware(testJWTSecret)
	adminOnly := middleware.AdminOnlyMiddleware(db)

	r.POST("/api/auth/register", RegisterHandler(db, testJWTSecret))
	r.POST("/api/auth/login", LoginHandler(db, testJWTSecret))
	r.GET("/api/auth/user", jwtAuth, CurrentUserHandler(db))

	r.POST("/api/predictions", jwtAuth, SubmitPredictionHandler(db))
	r.GET("/api/predictions/my-predictions", jwtAuth, MyPredictionsHandler(db))
	r.GET("/api/predictions/:raceId/my", jwtAuth, MyPredictionForRaceHandler(db))

	r.GET("/api/users/:id", GetUserHandler(db))

	r.POST("/api/race-results", jwtAuth, adminOnly, CreateResultHandler(db))
	return r
}

func createUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) (domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		IsAdmin:  isAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	token, err := utils.GenerateJWT(user.ID, user.Username, testJWTSecret)
	if err != nil {
		t.Fatalf("Failed to mint token: %v", err)
	}
	return user, token
}

func createRace(t *testing.T, db *gorm.DB, name string, date time.Time, open bool) domain.Race {
	t.Helper()
	race := domain.Race{
		Name:             name,
		Location:         "Test Circuit",
		Date:             date,
		IsPredictionOpen: open,
		Season:           2025,
		Round:            1,
	}
	if err := db.Create(&race).Error; err != nil {
		t.Fatalf("Failed to create race %s: %v", name, err)
	}
	return race
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
