package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProcessImageSendsBase64AndDecodesResults(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocr" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["image"] != base64.StdEncoding.EncodeToString(png) {
			t.Errorf("unexpected image payload %q", req["image"])
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"text_count":2,"results":[
			{"text":" 1. 下列哪项 ","confidence":0.98,"bbox":{"xmin":1,"ymin":2,"xmax":3,"ymax":4}},
			{"text":"正确","confidence":0.91}
		]}}`))
	}))
	defer srv.Close()

	client := New(srv.URL + "/")
	results, err := client.ProcessImage(context.Background(), png)
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if len(results) != 2 || results[0].BBox.XMax != 3 {
		t.Fatalf("unexpected results %#v", results)
	}

	text, err := client.RecognizeText(context.Background(), png)
	if err != nil {
		t.Fatalf("RecognizeText: %v", err)
	}
	if text != "1. 下列哪项 正确" {
		t.Fatalf("text = %q", text)
	}
}

func TestProcessImageServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ProcessImage(context.Background(), []byte("x"))
	if !errors.Is(err, ErrServiceFailed) {
		t.Fatalf("expected ErrServiceFailed, got %v", err)
	}
}

func TestProcessImageRejectsEmptyImage(t *testing.T) {
	if _, err := New("").ProcessImage(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty image")
	}
}

func TestCheckHealth(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{name: "json ok", status: http.StatusOK, body: `{"success":true,"message":"ok"}`},
		{name: "plain ok", status: http.StatusOK, body: `OK`},
		{name: "json failure", status: http.StatusOK, body: `{"success":false,"message":"model not loaded"}`, wantErr: true},
		{name: "bad status", status: http.StatusServiceUnavailable, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := New(srv.URL, WithHealthTimeout(time.Second)).CheckHealth(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("CheckHealth err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
