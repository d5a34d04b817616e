package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/orgball2608/social-publisher/pkg/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBaseURL(srv.URL, "v23.0", logger.New(logger.Opts{}))
}

func TestGetJSON(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v23.0/12345" {
			t.Errorf("path = %q, want /v23.0/12345", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != "full_picture" {
			t.Errorf("fields = %q, want full_picture", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"full_picture":"https://cdn.example.com/p.jpg"}`))
	})

	query := url.Values{}
	query.Set("fields", "full_picture")

	var out struct {
		FullPicture string `json:"full_picture"`
	}
	if err := client.GetJSON(context.Background(), "12345", query, &out); err != nil {
		t.Fatalf("GetJSON() unexpected error: %v", err)
	}
	if out.FullPicture != "https://cdn.example.com/p.jpg" {
		t.Errorf("full_picture = %q", out.FullPicture)
	}
}

func TestErrorEnvelope(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
	})

	err := client.PostForm(context.Background(), "page/videos", url.Values{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "Invalid OAuth access token." {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Code != 190 {
		t.Errorf("code = %d, want 190", apiErr.Code)
	}
	if apiErr.Type != "OAuthException" {
		t.Errorf("type = %q, want OAuthException", apiErr.Type)
	}
}

// The envelope wins even on a 200: some Graph deployments report errors with
// a success status.
func TestErrorEnvelopeOnSuccessStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"(#100) Missing image_url","type":"GraphMethodException","code":100}}`))
	})

	var out struct{}
	err := client.GetJSON(context.Background(), "whatever", nil, &out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != 100 {
		t.Errorf("code = %d, want 100", apiErr.Code)
	}
}

func TestNonJSONFailureStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("Bad Gateway"))
	})

	err := client.GetJSON(context.Background(), "whatever", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != http.StatusBadGateway {
		t.Errorf("code = %d, want 502", apiErr.Code)
	}
}

func TestPostMultipart(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("access_token"); got != "page-token" {
			t.Errorf("access_token = %q", got)
		}
		file, header, err := r.FormFile("source")
		if err != nil {
			t.Fatalf("missing source part: %v", err)
		}
		defer file.Close()
		if header.Filename != "upload.jpg" {
			t.Errorf("filename = %q, want upload.jpg", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"111","post_id":"111_222"}`))
	})

	fields := map[string]string{"access_token": "page-token"}
	var out struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	err := client.PostMultipart(context.Background(), "page/photos", fields, "source", "upload.jpg", []byte("jpeg-bytes"), &out)
	if err != nil {
		t.Fatalf("PostMultipart() unexpected error: %v", err)
	}
	if out.PostID != "111_222" {
		t.Errorf("post_id = %q, want 111_222", out.PostID)
	}
}
