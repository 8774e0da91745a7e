package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, hub *Hub, clinicID string) (*websocket.Conn, func()) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Subscribe(conn, clinicID)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial failed: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubDeliversToSubscribedClinic(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn, cleanup := dialHub(t, hub, "clinic-a")
	defer cleanup()
	waitForClients(t, hub, 1)

	hub.Publish(EventAppointmentCreated, "clinic-a", map[string]string{"session": "MORNING"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if ev.Type != EventAppointmentCreated {
		t.Errorf("event type = %q, want %q", ev.Type, EventAppointmentCreated)
	}
	if ev.ClinicID != "clinic-a" {
		t.Errorf("clinic ID = %q, want %q", ev.ClinicID, "clinic-a")
	}
	if ev.Seq != 1 {
		t.Errorf("seq = %d, want 1", ev.Seq)
	}
}

func TestHubIsolatesClinics(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	connA, cleanupA := dialHub(t, hub, "clinic-a")
	defer cleanupA()
	connB, cleanupB := dialHub(t, hub, "clinic-b")
	defer cleanupB()
	waitForClients(t, hub, 2)

	hub.Publish(EventSaleCompleted, "clinic-b", nil)

	connB.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := connB.ReadJSON(&ev); err != nil {
		t.Fatalf("clinic-b read failed: %v", err)
	}
	if ev.Type != EventSaleCompleted {
		t.Errorf("event type = %q, want %q", ev.Type, EventSaleCompleted)
	}

	// clinic-a must not see clinic-b's event
	connA.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if err := connA.ReadJSON(&ev); err == nil {
		t.Errorf("clinic-a received clinic-b event %q", ev.Type)
	}
}

func TestHubSequenceIncreases(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Publish(EventAppointmentCreated, "clinic-a", nil)
	hub.Publish(EventAppointmentUpdated, "clinic-a", nil)
	hub.Publish(EventPrescriptionPaid, "clinic-a", nil)

	if got := hub.Seq(); got != 3 {
		t.Errorf("seq = %d, want 3", got)
	}
}

func TestHubPublishAfterClose(t *testing.T) {
	hub := NewHub()
	hub.Close()

	// Must not panic or advance the sequence
	hub.Publish(EventAppointmentCreated, "clinic-a", nil)

	if got := hub.Seq(); got != 0 {
		t.Errorf("seq after close = %d, want 0", got)
	}
	if got := hub.ClientCount(); got != 0 {
		t.Errorf("client count after close = %d, want 0", got)
	}
}

func TestHubRemovesClientOnDisconnect(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn, cleanup := dialHub(t, hub, "clinic-a")
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
	cleanup()
}
