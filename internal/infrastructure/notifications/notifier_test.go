package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appconfig "github.com/Lee196444/Text2toss-app/internal/infrastructure/config"
	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
)

func TestTwilioNotifier_Send(t *testing.T) {
	t.Run("posts form to the account messages resource", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			user, pass, ok := r.BasicAuth()
			if !ok || user != "AC123" || pass != "secret" {
				t.Errorf("unexpected auth %q %q", user, pass)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			if r.PostForm.Get("To") != "+15551234567" || r.PostForm.Get("From") != "+15550000000" {
				t.Errorf("unexpected form %v", r.PostForm)
			}
			if r.PostForm.Get("MediaUrl") != "https://cdn.test/done.jpg" {
				t.Errorf("expected media url, got %q", r.PostForm.Get("MediaUrl"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued","error_code":null}`))
		}))
		defer srv.Close()

		n, err := NewTwilioNotifier(srv.URL, "AC123", "secret", "+15550000000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res, err := n.Send(context.Background(), interfaces.Notification{
			To:       "+15551234567",
			Body:     "Your pickup is complete",
			MediaURL: "https://cdn.test/done.jpg",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "SM1" || res.Status != "queued" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("api error is surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":21211,"message":"Invalid 'To' Phone Number","status":400}`))
		}))
		defer srv.Close()

		n, _ := NewTwilioNotifier(srv.URL, "AC123", "secret", "+15550000000")
		if _, err := n.Send(context.Background(), interfaces.Notification{To: "+1", Body: "hi"}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		if _, err := NewTwilioNotifier("", "", "x", "y"); !errors.Is(err, ErrMissingTwilioCredentials) {
			t.Fatalf("expected ErrMissingTwilioCredentials, got %v", err)
		}
	})
}

type recordingPublisher struct {
	key  string
	body []byte
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.key = key
	p.body, _ = json.Marshal(v)
	return p.err
}

func TestAMQPNotifier_Send(t *testing.T) {
	t.Run("publishes the message", func(t *testing.T) {
		pub := &recordingPublisher{}
		res, err := NewAMQPNotifier(pub).Send(context.Background(), interfaces.Notification{To: "+15551234567", Body: "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != "queued" || res.ID == "" {
			t.Fatalf("unexpected result: %+v", res)
		}
		var m SMSMessage
		if err := json.Unmarshal(pub.body, &m); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if pub.key != SMSRoutingKey || m.ID != res.ID || m.Body != "hello" {
			t.Fatalf("unexpected publish key=%s msg=%+v", pub.key, m)
		}
	})

	t.Run("publish failure", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("channel closed")}
		if _, err := NewAMQPNotifier(pub).Send(context.Background(), interfaces.Notification{To: "+1", Body: "x"}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestNew(t *testing.T) {
	n, closer, err := New(appconfig.App{NotifierDriver: appconfig.NotifierLog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(LogNotifier); !ok {
		t.Fatalf("expected LogNotifier, got %T", n)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	res, err := n.Send(context.Background(), interfaces.Notification{To: "+15551234567", Body: "hi"})
	if err != nil || res.Status != "logged" {
		t.Fatalf("unexpected result %+v err=%v", res, err)
	}

	if _, _, err := New(appconfig.App{NotifierDriver: appconfig.NotifierTwilio}); !errors.Is(err, ErrMissingTwilioCredentials) {
		t.Fatalf("expected ErrMissingTwilioCredentials, got %v", err)
	}
}
