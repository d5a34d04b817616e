package facebookimpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/facebook"
	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/pkg/logger"
)

var testConn = domain.FacebookConnection{
	PageID:          "424242",
	PageName:        "Test Page",
	PageAccessToken: "page-token",
}

func testImpl(t *testing.T, handler http.HandlerFunc) *FbImpl {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Opts{})
	return &FbImpl{
		Graph:  graph.NewWithBaseURL(srv.URL, "v23.0", log),
		Logger: log,
	}
}

func TestPublishPhoto(t *testing.T) {
	fb := testImpl(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v23.0/424242/photos":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("failed to parse multipart form: %v", err)
			}
			if got := r.FormValue("caption"); got != "hello world" {
				t.Errorf("caption = %q", got)
			}
			if _, _, err := r.FormFile("source"); err != nil {
				t.Errorf("missing source part: %v", err)
			}
			_, _ = w.Write([]byte(`{"id":"111","post_id":"424242_111"}`))
		case "/v23.0/424242_111":
			if got := r.URL.Query().Get("fields"); got != "full_picture" {
				t.Errorf("fields = %q, want full_picture", got)
			}
			_, _ = w.Write([]byte(`{"full_picture":"https://scontent.example.com/photo.jpg"}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := fb.PublishPhoto(context.Background(), testConn, "hello world", []byte("jpeg-bytes"), "upload.jpg")
	if err != nil {
		t.Fatalf("PublishPhoto() unexpected error: %v", err)
	}
	if result.PostID != "424242_111" {
		t.Errorf("PostID = %q, want 424242_111", result.PostID)
	}
	if result.PublicPhotoURL != "https://scontent.example.com/photo.jpg" {
		t.Errorf("PublicPhotoURL = %q", result.PublicPhotoURL)
	}
}

// The follow-up full_picture fetch failing must not fail the publish; the
// photo is already live.
func TestPublishPhotoPictureFetchFails(t *testing.T) {
	fb := testImpl(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v23.0/424242/photos":
			_, _ = w.Write([]byte(`{"id":"111","post_id":"424242_111"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"An unknown error has occurred.","code":1}}`))
		}
	})

	result, err := fb.PublishPhoto(context.Background(), testConn, "caption", []byte("jpeg"), "upload.jpg")
	if err != nil {
		t.Fatalf("PublishPhoto() unexpected error: %v", err)
	}
	if result.PostID != "424242_111" {
		t.Errorf("PostID = %q", result.PostID)
	}
	if result.PublicPhotoURL != "" {
		t.Errorf("PublicPhotoURL = %q, want empty", result.PublicPhotoURL)
	}
}

func TestPublishPhotoAPIError(t *testing.T) {
	fb := testImpl(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
	})

	_, err := fb.PublishPhoto(context.Background(), testConn, "caption", []byte("jpeg"), "upload.jpg")
	var pubErr *facebook.PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("error = %v, want *facebook.PublishError", err)
	}
	if pubErr.Reason != "Invalid OAuth access token." {
		t.Errorf("Reason = %q", pubErr.Reason)
	}
}

func TestPublishVideo(t *testing.T) {
	fb := testImpl(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v23.0/424242/videos" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostFormValue("file_url"); got != "https://cdn.example.com/launch.mp4" {
			t.Errorf("file_url = %q", got)
		}
		if got := r.PostFormValue("description"); got != "launch video" {
			t.Errorf("description = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"987"}`))
	})

	id, err := fb.PublishVideo(context.Background(), testConn, "launch video", "https://cdn.example.com/launch.mp4")
	if err != nil {
		t.Fatalf("PublishVideo() unexpected error: %v", err)
	}
	if id != "987" {
		t.Errorf("id = %q, want 987", id)
	}
}

func TestEngagement(t *testing.T) {
	fb := testImpl(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v23.0/424242_111" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"likes": {"summary": {"total_count": 12}},
			"comments": {"summary": {"total_count": 3}},
			"shares": {"count": 7}
		}`))
	})

	engagement, err := fb.Engagement(context.Background(), "page-token", "424242_111")
	if err != nil {
		t.Fatalf("Engagement() unexpected error: %v", err)
	}
	want := domain.Engagement{Likes: 12, Comments: 3, Shares: 7}
	if engagement != want {
		t.Errorf("engagement = %+v, want %+v", engagement, want)
	}
}
