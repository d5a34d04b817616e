package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/social-publisher/internal/connections"
	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/publisher"
	"github.com/orgball2608/social-publisher/pkg/logger"
)

type fakePublisher struct {
	post *domain.Post
	err  error
	got  *domain.PublishRequest
}

func (f *fakePublisher) Publish(_ context.Context, req domain.PublishRequest) (*domain.Post, error) {
	f.got = &req
	return f.post, f.err
}

type fakeConnections struct {
	details *domain.ConnectionDetails
}

func (f *fakeConnections) ConnectFacebook(_ context.Context, _, _ string) (*domain.ConnectionDetails, error) {
	return f.details, nil
}

func (f *fakeConnections) Get(_ context.Context, _ string) (*domain.ConnectionDetails, error) {
	if f.details == nil {
		return nil, connections.ErrNotConnected
	}
	return f.details, nil
}

func (f *fakeConnections) Disconnect(_ context.Context, _ string) error { return nil }

type allowLimiter struct{ allow bool }

func (l allowLimiter) Allow(string) bool { return l.allow }

func testRouter(pub *fakePublisher, conns *fakeConnections, allow bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := &Server{
		Publisher:   pub,
		Connections: conns,
		Limiter:     allowLimiter{allow: allow},
		Logger:      logger.New(logger.Opts{}),
	}
	engine := gin.New()
	s.registerRoutes(engine)
	return engine
}

func doPublish(t *testing.T, engine *gin.Engine, body string, withSession bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts/publish", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withSession {
		req.Header.Set("X-Session-ID", "session-1")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

const publishBody = `{"platforms":["facebook"],"media":"https://cdn.example.com/launch.mp4","caption":"hi"}`

func TestHandlePublishSuccess(t *testing.T) {
	pub := &fakePublisher{post: &domain.Post{ID: "fb-1", SessionID: "session-1"}}
	conns := &fakeConnections{details: &domain.ConnectionDetails{
		SessionID: "session-1",
		Facebook:  &domain.FacebookConnection{PageID: "424242", PageAccessToken: "page-token"},
	}}

	rec := doPublish(t, testRouter(pub, conns, true), publishBody, true)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if pub.got == nil {
		t.Fatal("publisher was not invoked")
	}
	if pub.got.Credentials.Facebook == nil || pub.got.Credentials.Facebook.PageID != "424242" {
		t.Errorf("credentials = %+v, want the stored snapshot", pub.got.Credentials)
	}
}

func TestHandlePublishPartialFailure(t *testing.T) {
	pub := &fakePublisher{
		post: &domain.Post{ID: "fb-1"},
		err: &publisher.PartialFailureError{Failures: []publisher.Failure{
			{Platform: domain.PlatformInstagram, Reason: "media container entered ERROR state"},
		}},
	}

	rec := doPublish(t, testRouter(pub, &fakeConnections{}, true), publishBody, true)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Post    *domain.Post `json:"post"`
		Message string       `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Post == nil || resp.Post.ID != "fb-1" {
		t.Errorf("post = %+v", resp.Post)
	}
	if !strings.Contains(resp.Message, "instagram (") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestHandlePublishTotalFailure(t *testing.T) {
	pub := &fakePublisher{
		err: &publisher.PartialFailureError{Failures: []publisher.Failure{
			{Platform: domain.PlatformFacebook, Reason: "connection details not provided"},
		}},
	}

	rec := doPublish(t, testRouter(pub, &fakeConnections{}, true), publishBody, true)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePublishRateLimited(t *testing.T) {
	pub := &fakePublisher{}
	rec := doPublish(t, testRouter(pub, &fakeConnections{}, false), publishBody, true)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if pub.got != nil {
		t.Error("publisher must not run when the limiter rejects the call")
	}
}

func TestHandlePublishRequiresSession(t *testing.T) {
	rec := doPublish(t, testRouter(&fakePublisher{}, &fakeConnections{}, true), publishBody, false)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlePublishValidatesBody(t *testing.T) {
	rec := doPublish(t, testRouter(&fakePublisher{}, &fakeConnections{}, true), `{"platforms":[]}`, true)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
