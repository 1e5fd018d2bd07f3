package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestFanout_DeliversToAllSinks(t *testing.T) {
	var got []Type
	ok := PublisherFunc(func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	boom := errors.New("queue down")
	failing := PublisherFunc(func(context.Context, Event) error { return boom })

	f := NewFanout(nil, failing, nil, ok)
	err := f.Publish(context.Background(), New(TypeJobPosted, uuid.New()))
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain sink error, got %v", err)
	}
	if len(got) != 1 || got[0] != TypeJobPosted {
		t.Fatalf("healthy sink should still receive the event, got %v", got)
	}
}

func TestEvent_JSONOmitsUnsetFields(t *testing.T) {
	e := New(TypeJobPosted, uuid.New())
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, k := range []string{"application_id", "user_id", "status"} {
		if strings.Contains(s, k) {
			t.Fatalf("%s should be omitted: %s", k, s)
		}
	}

	appID := uuid.New()
	b, _ = json.Marshal(e.WithApplication(appID).WithStatus("approved"))
	if !strings.Contains(string(b), appID.String()) || !strings.Contains(string(b), `"status":"approved"`) {
		t.Fatalf("unexpected payload: %s", b)
	}

	owner := uuid.New()
	b, _ = json.Marshal(e.WithAudience(owner))
	if strings.Contains(string(b), owner.String()) || strings.Contains(string(b), "audience") {
		t.Fatalf("audience must not be serialized: %s", b)
	}
}

func TestFanout_NilIsNoop(t *testing.T) {
	var f *Fanout
	if err := f.Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("nil fanout should be a no-op, got %v", err)
	}
}
