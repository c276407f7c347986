package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

type apiResponse struct {
	status int
	body   any
}

// ApiMock is a scripted HTTP server standing in for a remote ledger API.
// Paths may use "*" for a single segment, e.g. "/api/v1/actual-items/*".
type ApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	requestsReceived map[string][]map[string]any
	responses        map[string]apiResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		responses:        map[string]apiResponse{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// SetResponse scripts the answer to every request matching method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+" "+path] = apiResponse{status: status, body: body}
}

// RequestCount returns how many requests matched method and path exactly.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requestsReceived[method+" "+path])
}

// GetRequestBody returns the decoded body of the index-th matching request.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	requests := a.requestsReceived[method+" "+path]
	if index < 0 || index >= len(requests) {
		return nil
	}
	return requests[index]
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var request map[string]any
	_ = json.Unmarshal(body, &request)
	if request == nil {
		request = map[string]any{}
	}

	a.mu.Lock()
	key := r.Method + " " + r.URL.Path
	a.requestsReceived[key] = append(a.requestsReceived[key], request)
	response, ok := a.findResponse(r.Method, r.URL.Path)
	a.mu.Unlock()

	if !ok {
		// Unscripted requests succeed with an empty object
		response = apiResponse{status: http.StatusOK, body: map[string]any{}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_ = json.NewEncoder(w).Encode(response.body)
}

func (a *ApiMock) findResponse(method, path string) (apiResponse, bool) {
	if response, ok := a.responses[method+" "+path]; ok {
		return response, true
	}
	for key, response := range a.responses {
		keyMethod, keyPath, _ := strings.Cut(key, " ")
		if keyMethod == method && matchPath(keyPath, path) {
			return response, true
		}
	}
	return apiResponse{}, false
}

func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}
