package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/KRTNP/User-Management-System-For-Train/internal/auth"
	"github.com/KRTNP/User-Management-System-For-Train/internal/auth/password"
	"github.com/KRTNP/User-Management-System-For-Train/internal/rbac"
	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
	"github.com/KRTNP/User-Management-System-For-Train/internal/users"
	_ "github.com/KRTNP/User-Management-System-For-Train/testing"
)

type handlerFixture struct {
	router http.Handler
	repo   *memoryRepo
	codec  *auth.TokenCodec
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	repo := newMemoryRepo()
	codec := auth.NewTokenCodec([]byte("users-handler-secret"), time.Hour)
	service := users.NewService(repo, password.NewHasher(password.MinCost))
	handler := users.NewHandler(nil, service, rbac.Middleware{Tokens: codec})

	r := chi.NewRouter()
	r.Route("/users", handler.MountRoutes)
	return &handlerFixture{router: r, repo: repo, codec: codec}
}

func (f *handlerFixture) seed(t *testing.T, username, email string, role shared.Role) (*users.User, string) {
	t.Helper()
	user, err := f.repo.Insert(context.Background(), username, email, "irrelevant-hash", role)
	require.NoError(t, err)
	token, err := f.codec.Issue(user)
	require.NoError(t, err)
	return user, token
}

func (f *handlerFixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)
	return res
}

func TestListRequiresAdmin(t *testing.T) {
	f := newHandlerFixture(t)
	_, userToken := f.seed(t, "bob", "bob@example.com", shared.RoleUser)

	res := f.do(t, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusUnauthorized, res.Code)

	res = f.do(t, http.MethodGet, "/users", "", userToken)
	require.Equal(t, http.StatusForbidden, res.Code)
	// No records leak with the denial.
	require.NotContains(t, res.Body.String(), "bob@example.com")
}

func TestListUsers(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)
	f.seed(t, "bob", "bob@example.com", shared.RoleUser)

	res := f.do(t, http.MethodGet, "/users", "", adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	require.Len(t, list, 2)
	for _, user := range list {
		require.NotContains(t, user, "password_hash")
	}
}

func TestGetUser(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)
	target, _ := f.seed(t, "bob", "bob@example.com", shared.RoleUser)

	res := f.do(t, http.MethodGet, "/users/"+itoa(target.ID), "", adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	res = f.do(t, http.MethodGet, "/users/99999", "", adminToken)
	require.Equal(t, http.StatusNotFound, res.Code)

	res = f.do(t, http.MethodGet, "/users/not-a-number", "", adminToken)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateUserAsAdmin(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)

	res := f.do(t, http.MethodPost, "/users",
		`{"username":"carol","email":"carol@example.com","password":"secret-pass-1","role":"admin"}`, adminToken)
	require.Equal(t, http.StatusCreated, res.Code)

	var body struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "admin", body.User["role"])
	require.NotContains(t, body.User, "password_hash")
}

func TestCreateUserRejectsBadRole(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)

	res := f.do(t, http.MethodPost, "/users",
		`{"username":"carol","email":"carol@example.com","password":"secret-pass-1","role":"superuser"}`, adminToken)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateDuplicateUser(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)
	f.seed(t, "bob", "bob@example.com", shared.RoleUser)

	res := f.do(t, http.MethodPost, "/users",
		`{"username":"bob","email":"new@example.com","password":"secret-pass-1"}`, adminToken)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUpdateUserRole(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)
	target, _ := f.seed(t, "bob", "bob@example.com", shared.RoleUser)

	res := f.do(t, http.MethodPut, "/users/"+itoa(target.ID), `{"role":"admin"}`, adminToken)
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "admin", body.User["role"])
}

func TestUpdateSelfDemotionRejected(t *testing.T) {
	f := newHandlerFixture(t)
	admin, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)

	res := f.do(t, http.MethodPut, "/users/"+itoa(admin.ID), `{"role":"user"}`, adminToken)
	require.Equal(t, http.StatusBadRequest, res.Code)

	stored, err := f.repo.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Equal(t, shared.RoleAdmin, stored.Role)
}

func TestDeleteSelfRejected(t *testing.T) {
	f := newHandlerFixture(t)
	admin, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)

	res := f.do(t, http.MethodDelete, "/users/"+itoa(admin.ID), "", adminToken)
	require.Equal(t, http.StatusBadRequest, res.Code)

	_, err := f.repo.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	f := newHandlerFixture(t)
	_, adminToken := f.seed(t, "root", "root@example.com", shared.RoleAdmin)
	target, _ := f.seed(t, "bob", "bob@example.com", shared.RoleUser)

	res := f.do(t, http.MethodDelete, "/users/"+itoa(target.ID), "", adminToken)
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "user deleted")

	res = f.do(t, http.MethodDelete, "/users/"+itoa(target.ID), "", adminToken)
	require.Equal(t, http.StatusNotFound, res.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
