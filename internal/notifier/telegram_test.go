package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestNotifier(t *testing.T, h http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	return tn
}

func TestSend(t *testing.T) {
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload["chat_id"] != "42" || payload["text"] != "hello" || payload["parse_mode"] != "HTML" {
			t.Errorf("unexpected payload %v", payload)
		}
		w.Write([]byte(`{"ok":true}`))
	})
	if err := tn.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestSend_APIError(t *testing.T) {
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusBadRequest)
	})
	if err := tn.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSendPhoto(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendPhoto" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("chat_id") != "42" || r.FormValue("caption") != "ACME 1M" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		f, _, err := r.FormFile("photo")
		if err != nil {
			t.Fatalf("photo: %v", err)
		}
		defer f.Close()
		got, _ := io.ReadAll(f)
		if string(got) != string(png) {
			t.Errorf("photo bytes = %v", got)
		}
	})
	if err := tn.SendPhoto(context.Background(), "ACME 1M", png); err != nil {
		t.Fatalf("SendPhoto: %v", err)
	}
}

type flakyNotifier struct {
	failures int
	calls    int
}

func (f *flakyNotifier) Send(context.Context, string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("boom")
	}
	return nil
}

func (f *flakyNotifier) SendPhoto(context.Context, string, []byte) error { return nil }

func TestSendWithRetry(t *testing.T) {
	n := &flakyNotifier{failures: 1}
	if err := SendWithRetry(context.Background(), n, "hi", 2); err != nil {
		t.Fatalf("SendWithRetry: %v", err)
	}
	if n.calls != 2 {
		t.Errorf("expected 2 calls, got %d", n.calls)
	}
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	n := &flakyNotifier{failures: 10}
	if err := SendWithRetry(ctx, n, "hi", 5); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestStartPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	replies := make(chan string, 1)
	polled := 0
	tn := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			polled++
			if polled > 1 {
				<-r.Context().Done()
				return
			}
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":5,"message":{"text":"/perf ACME","chat":{"id":99}}},
				{"update_id":6,"message":{"text":" /perf ACME ","chat":{"id":42}}}
			]}`))
		case "/botTOKEN/sendMessage":
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			replies <- payload["text"]
		}
	})

	var got []string
	done := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, func(_ context.Context, cmd string) string {
			got = append(got, cmd)
			return "reply to " + cmd
		})
		close(done)
	}()

	select {
	case reply := <-replies:
		if reply != "reply to /perf ACME" {
			t.Errorf("unexpected reply %q", reply)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reply sent")
	}
	cancel()
	<-done
	if len(got) != 1 {
		t.Errorf("expected only the configured chat's command, got %v", got)
	}
}
