package instagramimpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/social-publisher/internal/domain"
	"github.com/orgball2608/social-publisher/internal/graph"
	"github.com/orgball2608/social-publisher/internal/instagram"
	"github.com/orgball2608/social-publisher/internal/media"
	"github.com/orgball2608/social-publisher/pkg/logger"
)

var testConn = domain.InstagramConnection{
	UserID:      "17890",
	Username:    "testaccount",
	AccessToken: "page-token",
}

func testImpl(t *testing.T, attempts int, handler http.HandlerFunc) *IgImpl {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Opts{})
	return &IgImpl{
		Graph:        graph.NewWithBaseURL(srv.URL, "v23.0", log),
		Logger:       log,
		PollInterval: time.Millisecond,
		PollAttempts: attempts,
	}
}

func TestPublishImage(t *testing.T) {
	ig := testImpl(t, 3, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v23.0/17890/media":
			_ = r.ParseForm()
			if got := r.PostFormValue("image_url"); got != "https://scontent.example.com/photo.jpg" {
				t.Errorf("image_url = %q", got)
			}
			if got := r.PostFormValue("media_type"); got != "" {
				t.Errorf("media_type = %q, want unset for images", got)
			}
			_, _ = w.Write([]byte(`{"id":"container-1"}`))
		case "/v23.0/container-1":
			_, _ = w.Write([]byte(`{"status_code":"FINISHED"}`))
		case "/v23.0/17890/media_publish":
			_ = r.ParseForm()
			if got := r.PostFormValue("creation_id"); got != "container-1" {
				t.Errorf("creation_id = %q", got)
			}
			_, _ = w.Write([]byte(`{"id":"ig-media-1"}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	id, err := ig.Publish(context.Background(), testConn, "caption", "https://scontent.example.com/photo.jpg", media.KindImage)
	if err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}
	if id != "ig-media-1" {
		t.Errorf("id = %q, want ig-media-1", id)
	}
}

func TestPublishVideoAsReels(t *testing.T) {
	var polls atomic.Int32
	ig := testImpl(t, 5, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v23.0/17890/media":
			_ = r.ParseForm()
			if got := r.PostFormValue("video_url"); got != "https://cdn.example.com/launch.mp4" {
				t.Errorf("video_url = %q", got)
			}
			if got := r.PostFormValue("media_type"); got != "REELS" {
				t.Errorf("media_type = %q, want REELS", got)
			}
			_, _ = w.Write([]byte(`{"id":"container-2"}`))
		case "/v23.0/container-2":
			if polls.Add(1) < 3 {
				_, _ = w.Write([]byte(`{"status_code":"IN_PROGRESS"}`))
			} else {
				_, _ = w.Write([]byte(`{"status_code":"FINISHED"}`))
			}
		case "/v23.0/17890/media_publish":
			_, _ = w.Write([]byte(`{"id":"ig-media-2"}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	})

	id, err := ig.Publish(context.Background(), testConn, "caption", "https://cdn.example.com/launch.mp4", media.KindVideo)
	if err != nil {
		t.Fatalf("Publish() unexpected error: %v", err)
	}
	if id != "ig-media-2" {
		t.Errorf("id = %q, want ig-media-2", id)
	}
	if polls.Load() != 3 {
		t.Errorf("polls = %d, want 3", polls.Load())
	}
}

func TestPublishContainerError(t *testing.T) {
	var polls atomic.Int32
	ig := testImpl(t, 5, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v23.0/17890/media":
			_, _ = w.Write([]byte(`{"id":"container-3"}`))
		case "/v23.0/container-3":
			if polls.Add(1) == 1 {
				_, _ = w.Write([]byte(`{"status_code":"IN_PROGRESS"}`))
			} else {
				_, _ = w.Write([]byte(`{"status_code":"ERROR"}`))
			}
		case "/v23.0/17890/media_publish":
			t.Error("media_publish must not be called for a failed container")
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	})

	_, err := ig.Publish(context.Background(), testConn, "caption", "https://cdn.example.com/bad.mp4", media.KindVideo)
	var pubErr *instagram.PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("error = %v, want *instagram.PublishError", err)
	}
}

func TestPublishPollingTimeout(t *testing.T) {
	const attempts = 4
	var polls atomic.Int32
	ig := testImpl(t, attempts, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v23.0/17890/media":
			_, _ = w.Write([]byte(`{"id":"container-4"}`))
		case "/v23.0/container-4":
			polls.Add(1)
			_, _ = w.Write([]byte(`{"status_code":"IN_PROGRESS"}`))
		case "/v23.0/17890/media_publish":
			t.Error("media_publish must not be called after a timeout")
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	})

	_, err := ig.Publish(context.Background(), testConn, "caption", "https://cdn.example.com/slow.mp4", media.KindVideo)
	if !errors.Is(err, instagram.ErrProcessingTimeout) {
		t.Fatalf("error = %v, want ErrProcessingTimeout", err)
	}
	if polls.Load() != attempts {
		t.Errorf("polls = %d, want %d", polls.Load(), attempts)
	}
}

// An image publish with no hosted URL means the Facebook photo leg did not
// produce one; the call must fail before touching the network.
func TestPublishImageRequiresFacebookPhoto(t *testing.T) {
	ig := testImpl(t, 3, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL.Path)
	})

	_, err := ig.Publish(context.Background(), testConn, "caption", "", media.KindImage)
	if !errors.Is(err, instagram.ErrFacebookPhotoRequired) {
		t.Fatalf("error = %v, want ErrFacebookPhotoRequired", err)
	}
}
