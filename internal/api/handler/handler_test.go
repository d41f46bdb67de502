package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"reclaimr/backend/internal/api/handler"
	"reclaimr/backend/internal/chathub"
	"reclaimr/backend/internal/models"
	"reclaimr/backend/internal/storage"
)

type testEnv struct {
	router  *gin.Engine
	store   *storage.Service
	manager *chathub.ManagerService
	handler *handler.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("COLLEGE_EMAIL_DOMAIN", "college.edu")
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	store := storage.NewStorageService()
	manager := chathub.NewManagerService(store)
	h := handler.NewHandler(manager, store)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authed := r.Group("/", h.AuthRequired())
	authed.POST("/report", h.ReportItem)
	authed.GET("/items", h.ListItems)
	authed.GET("/item/:item_id", h.GetItem)
	authed.POST("/upload-image", h.UploadImage)
	authed.POST("/chat/create-session", h.CreateChatSession)

	r.GET("/chat/:session_id", h.ServeChatWS)
	r.GET("/admin/stats", h.AdminStats)
	r.DELETE("/admin/reset", h.AdminReset)

	return &testEnv{router: r, store: store, manager: manager, handler: h}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user over the API and returns their token.
func (e *testEnv) register(t *testing.T, email, name string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "secret", "name": name,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestRegister_RejectsForeignDomain(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": "someone@gmail.com", "password": "secret", "name": "Someone",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "college.edu")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice@college.edu", "Alice")

	w := env.do(http.MethodPost, "/auth/register", "", gin.H{
		"email": "alice@college.edu", "password": "secret", "name": "Alice Again",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice@college.edu", "Alice")

	w := env.do(http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@college.edu", "password": "whatever",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")

	w = env.do(http.MethodPost, "/auth/login", "", gin.H{
		"email": "stranger@college.edu", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/items", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportAndFilterItems(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice@college.edu", "Alice")

	w := env.do(http.MethodPost, "/report", token, gin.H{
		"title": "Blue backpack", "description": "Left in the reading room",
		"type": "lost", "location": "Main Library", "contact_info": "alice@college.edu",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPost, "/report", token, gin.H{
		"title": "Water bottle", "description": "Found near the benches",
		"type": "found", "location": "Gym", "contact_info": "alice@college.edu",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.Item

	w = env.do(http.MethodGet, "/items", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	w = env.do(http.MethodGet, "/items?type=lost", token, nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "Blue backpack", items[0].Title)

	// Location filtering is a case-insensitive substring match.
	w = env.do(http.MethodGet, "/items?location=library", token, nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "Main Library", items[0].Location)

	w = env.do(http.MethodGet, "/items?type=found&location=pool", token, nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestGetItem(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice@college.edu", "Alice")

	w := env.do(http.MethodPost, "/report", token, gin.H{
		"title": "Keys", "description": "A bunch of keys",
		"type": "found", "location": "Cafeteria", "contact_info": "alice@college.edu",
	})
	var created models.Item
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(http.MethodGet, "/item/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/item/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice@college.edu", "Alice")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "photo.jpg")
	assert.NoError(t, err)
	fmt.Fprint(fw, "not really a jpeg")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://storage.reclaimr.com/images/")
}

func TestCreateChatSession(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.register(t, "owner@college.edu", "Owner")
	requesterToken := env.register(t, "requester@college.edu", "Requester")

	w := env.do(http.MethodPost, "/report", ownerToken, gin.H{
		"title": "Umbrella", "description": "Black umbrella",
		"type": "found", "location": "Bus stop", "contact_info": "owner@college.edu",
	})
	var item models.Item
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	// Missing item id
	w = env.do(http.MethodPost, "/chat/create-session", requesterToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown item
	w = env.do(http.MethodPost, "/chat/create-session?item_id=ghost", requesterToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Owner talking to themselves
	w = env.do(http.MethodPost, "/chat/create-session?item_id="+item.ID, ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot chat with yourself")

	// The real thing
	w = env.do(http.MethodPost, "/chat/create-session?item_id="+item.ID, requesterToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var session models.ChatSession
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, item.ID, session.ItemID)
	assert.Equal(t, item.UserID, session.Participants[1], "owner is the second participant")
	assert.NotEqual(t, session.Participants[0], session.Participants[1])
	assert.True(t, session.IsActive)
	assert.NotNil(t, session.Messages)
	assert.Empty(t, session.Messages)

	stored, err := env.store.GetSession(session.ID)
	assert.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestAdminStatsAndReset(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.register(t, "owner@college.edu", "Owner")
	env.register(t, "requester@college.edu", "Requester")

	w := env.do(http.MethodPost, "/report", ownerToken, gin.H{
		"title": "Wallet", "description": "Brown wallet",
		"type": "lost", "location": "Lecture hall", "contact_info": "owner@college.edu",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	session, err := env.manager.Sessions.CreateSession("item_x", "user_1", "user_2")
	assert.NoError(t, err)
	env.store.SetSessionInactive(session.ID)
	_, err = env.manager.Sessions.CreateSession("item_y", "user_3", "user_4")
	assert.NoError(t, err)

	w = env.do(http.MethodGet, "/admin/stats", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats models.AdminStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalItems)
	assert.Equal(t, 1, stats.ActiveChats)

	w = env.do(http.MethodDelete, "/admin/reset", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/admin/stats", "", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalItems)
	assert.Zero(t, stats.ActiveChats)
}
