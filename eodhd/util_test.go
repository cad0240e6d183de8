package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiskCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"n":42}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}
	for i := 0; i < 2; i++ {
		var got struct{ N int }
		if err := jwget(context.Background(), client, srv.URL+"/answer", &got); err != nil {
			t.Fatalf("jwget() unexpected error = %v", err)
		}
		if got.N != 42 {
			t.Errorf("jwget() = %v, want 42", got.N)
		}
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 as the second call is cached", calls)
	}

	// errors are not cached
	for i := 0; i < 2; i++ {
		var got any
		if err := jwget(context.Background(), client, srv.URL+"/missing", &got); err == nil {
			t.Error("jwget() expected an error for a 404")
		}
	}
	if calls != 3 {
		t.Errorf("server called %d times, want 3", calls)
	}
}
