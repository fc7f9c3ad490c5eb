package toolbox

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type recordedRequest struct {
	Path        string
	ContentType string
	Raw         string
	Body        map[string]interface{}
}

// fakeAPI records every request and answers with a configurable status
type fakeAPI struct {
	mu        sync.Mutex
	requests  []recordedRequest
	status    int
	result    string
	ticketURL string

	// when set, handlers signal arrival and wait for release
	arrived chan struct{}
	release chan struct{}

	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{status: http.StatusOK, result: "generated text", ticketURL: "https://jira.example.com/browse/TB-1"}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Raw:         string(raw),
		Body:        body,
	})
	status, result, ticketURL := f.status, f.result, f.ticketURL
	arrived, release := f.arrived, f.release
	f.mu.Unlock()

	if arrived != nil {
		arrived <- struct{}{}
		<-release
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"result": result, "ticket_url": ticketURL})
}

func (f *fakeAPI) respond(status int, result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.result = result
}

func (f *fakeAPI) block() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.arrived = make(chan struct{})
	f.release = make(chan struct{})
}

// unblock lets later requests through without waiting; a request already
// parked keeps waiting on its release channel.
func (f *fakeAPI) unblock() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.arrived = nil
	f.release = nil
}

func (f *fakeAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeAPI) dispatcher() *Dispatcher {
	return NewDispatcher(f.server.URL)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}
