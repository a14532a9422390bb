package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thejerf/abtime"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"blog-api/internal/service"
)

const testSecret = "test-secret"

type testAPI struct {
	router  *gin.Engine
	users   *mockUserRepo
	posts   *mockPostRepo
	clock   *abtime.ManualTime
	tokens  *service.TokenService
	metrics *Metrics
}

type apiOptions struct {
	limiter service.SignInLimiter
	origins []string
	metrics bool
}

func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := newMockUserRepo()
	posts := newMockPostRepo(users)
	clock := abtime.NewManualAtTime(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	tokens := service.NewTokenService([]byte(testSecret), time.Hour, clock, logger)
	cookie := NewSessionCookie(false, tokens.TTL())

	var metrics *Metrics
	if opts.metrics {
		metrics = NewMetrics()
	}

	userSvc := service.NewUserService(logger, users, service.NewBcryptHasher(bcrypt.MinCost), opts.limiter)
	postSvc := service.NewPostService(logger, posts)

	router := NewRouter(logger, RouterConfig{
		CORSOrigins:    opts.origins,
		Metrics:        metrics,
		RequireSession: SessionAuthMiddleware(logger, cookie, tokens),
	},
		NewAuthHandler(logger, userSvc, tokens, cookie, metrics),
		NewPostHandler(logger, postSvc),
		NewHealthHandler(logger, nil),
	)

	return &testAPI{
		router:  router,
		users:   users,
		posts:   posts,
		clock:   clock,
		tokens:  tokens,
		metrics: metrics,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (a *testAPI) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

// signUpAndIn registra un usuario y devuelve su id y la cookie de sesion.
func (a *testAPI) signUpAndIn(t *testing.T, name, email string) (string, *http.Cookie) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": name, "email": email, "password": "supersecret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(decodeResponse(t, rec).Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}

	rec = a.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"email": email, "password": "supersecret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookieFrom(rec)
	if cookie == nil {
		t.Fatalf("signin: expected session cookie")
	}
	return user.ID, &http.Cookie{Name: cookie.Name, Value: cookie.Value}
}

func (a *testAPI) createPost(t *testing.T, cookie *http.Cookie, title, content string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/posts", map[string]string{"title": title, "content": content}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var post struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(decodeResponse(t, rec).Data, &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	return post.ID
}
