package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditrepository "github.com/smallbiznis/backoffice/internal/audit/repository"
	auditservice "github.com/smallbiznis/backoffice/internal/audit/service"
	authdomain "github.com/smallbiznis/backoffice/internal/auth/domain"
	authrepository "github.com/smallbiznis/backoffice/internal/auth/repository"
	authservice "github.com/smallbiznis/backoffice/internal/auth/service"
	"github.com/smallbiznis/backoffice/internal/auth/session"
	categoryrepository "github.com/smallbiznis/backoffice/internal/category/repository"
	categoryservice "github.com/smallbiznis/backoffice/internal/category/service"
	"github.com/smallbiznis/backoffice/internal/config"
	customerrepository "github.com/smallbiznis/backoffice/internal/customer/repository"
	customerservice "github.com/smallbiznis/backoffice/internal/customer/service"
	"github.com/smallbiznis/backoffice/internal/migration"
	"github.com/smallbiznis/backoffice/internal/observability"
	productrepository "github.com/smallbiznis/backoffice/internal/product/repository"
	productservice "github.com/smallbiznis/backoffice/internal/product/service"
	promotionrepository "github.com/smallbiznis/backoffice/internal/promotion/repository"
	promotionservice "github.com/smallbiznis/backoffice/internal/promotion/service"
	"github.com/smallbiznis/backoffice/internal/upload/disk"
	uploadservice "github.com/smallbiznis/backoffice/internal/upload/service"
	"github.com/smallbiznis/backoffice/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	srv    *Server
	db     *gorm.DB
	cookie *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.Run(conn, db.Config{Type: db.TypeSQLite}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	cfg := config.Config{
		Environment: "test",
		SessionTTL:  time.Hour,
		Upload: config.UploadConfig{
			Dir:       t.TempDir(),
			URLPrefix: "/uploads",
			MaxBytes:  1 << 20,
		},
	}

	store, err := disk.New(cfg)
	require.NoError(t, err)

	authsvc := authservice.New(authservice.Params{DB: conn, Log: log, GenID: node, Repo: authrepository.Provide(), Config: cfg})

	srv := NewServer(ServerParams{
		Gin:          NewEngine(observability.Config{Environment: "test"}, nil),
		Cfg:          cfg,
		CatalogCfg:   config.NewStaticCatalogConfigHolder(config.DefaultCatalogConfig()),
		DB:           conn,
		Authsvc:      authsvc,
		Sessions:     session.NewManager(cfg),
		GenID:        node,
		CategorySvc:  categoryservice.New(categoryservice.Params{DB: conn, Log: log, GenID: node, Repo: categoryrepository.Provide()}),
		CustomerSvc:  customerservice.New(customerservice.Params{DB: conn, Log: log, GenID: node, Repo: customerrepository.Provide()}),
		ProductSvc:   productservice.New(productservice.Params{DB: conn, Log: log, GenID: node, Repo: productrepository.Provide()}),
		PromotionSvc: promotionservice.New(promotionservice.Params{DB: conn, Log: log, GenID: node, Repo: promotionrepository.Provide()}),
		UploadSvc:    uploadservice.New(uploadservice.Params{Config: cfg, Log: log, Store: store}),
		AuditSvc:     auditservice.NewService(auditservice.Params{DB: conn, Log: log, GenID: node, Repo: auditrepository.Provide()}),
	})

	_, err = authsvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:       "admin@example.com",
		Password:    "correct-horse",
		DisplayName: "Admin",
	})
	require.NoError(t, err)

	ts := &testServer{srv: srv, db: conn}
	rec := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			ts.cookie = c
		}
	}
	require.NotNil(t, ts.cookie)

	return ts
}

// do sends an anonymous request.
func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return ts.send(t, method, path, body, nil)
}

// doAuth sends the request with the admin session cookie.
func (ts *testServer) doAuth(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return ts.send(t, method, path, body, ts.cookie)
}

func (ts *testServer) send(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (ts *testServer) createCategory(t *testing.T, name string) string {
	t.Helper()

	rec := ts.doAuth(t, http.MethodPost, "/api/category", map[string]string{"nameEn": name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(t, rec)["data"].(map[string]any)["id"].(string)
}
