// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/smartspend/backend/config"
	"github.com/smartspend/backend/internal/application/ledgersync"
	"github.com/smartspend/backend/internal/infra/dependency"
	"github.com/smartspend/backend/internal/integration/persistence/model"
	"github.com/smartspend/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string
	stored         map[string]string

	// Infrastructure
	cfg   *config.Config
	db    *mock.Db
	redis *redis.Client
	clock *mock.Time

	// Sync facade
	remoteAPI *mock.ApiMock
	facade    *ledgersync.Facade
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		// Set Gin to test mode
		gin.SetMode(gin.TestMode)
		mock.NewDb(model.AllModels()...)
		mock.NewRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Gemini.APIKey = ""

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			stored:         make(map[string]string),
			cfg:            cfg,
			db:             mock.NewDb(model.AllModels()...),
			redis:          mock.NewRedis(),
			clock:          mock.NewTime(),
		}
		if err := tc.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(tc.redis); err != nil {
			return ctx, err
		}

		tc.startServer(nil)
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc == nil {
			return ctx, nil
		}
		if tc.facade != nil {
			tc.facade.Close()
		}
		if tc.remoteAPI != nil {
			tc.remoteAPI.Close()
		}
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	// Register step definitions
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerLedgerSteps(ctx)
	registerSyncSteps(ctx)
}

// startServer wires the application over the mock database. A nil redisClient
// keeps the cache in process memory.
func (tc *TestContext) startServer(redisClient *redis.Client) {
	if tc.server != nil {
		tc.server.Close()
	}
	injector := dependency.NewInjector(tc.cfg, tc.db.DbConn, redisClient)
	tc.engine = injector.Router.Setup(tc.cfg.Server.Environment)
	tc.server = httptest.NewServer(tc.engine)
}

var placeholder = regexp.MustCompile(`\{([a-zA-Z0-9_-]+)\}`)

// interpolate replaces {name} with values stored by earlier steps.
func (tc *TestContext) interpolate(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		if value, ok := tc.stored[match[1:len(match)-1]]; ok {
			return value
		}
		return match
	})
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^the API server is running with the Redis cache$`, theAPIServerIsRunningWithRedis)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I store the response field "([^"]*)" as "([^"]*)"$`, iStoreTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be null$`, theResponseFieldShouldBeNull)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response should match json:$`, theResponseShouldMatchJSON)
	ctx.Step(`^the response should be a list of (\d+) items?$`, theResponseShouldBeAListOf)
	ctx.Step(`^item (\d+) of the response should have "([^"]*)" equal to "([^"]*)"$`, itemOfTheResponseShouldHave)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func theAPIServerIsRunningWithRedis(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.startServer(tc.redis)
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, "")
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, body.Content)
}

func sendRequest(ctx context.Context, method, endpoint, body string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(tc.interpolate(body))
	}

	url := tc.server.URL + tc.interpolate(endpoint)
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add headers
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iStoreTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := responseField(tc, field)
	if err != nil {
		return err
	}
	tc.stored[name] = fmt.Sprintf("%v", value)
	return nil
}

func responseField(tc *TestContext, field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}
	return value, nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expected = tc.interpolate(expected)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := responseField(tc, field)
	if err != nil {
		return err
	}

	expected = tc.interpolate(expected)
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}

	return nil
}

func theResponseFieldShouldBeNull(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := responseField(tc, field)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("field '%s' expected null, got '%v'", field, value)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := responseField(tc, field)
	return err
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var expected, actual interface{}

	if err := json.Unmarshal([]byte(tc.interpolate(body.Content)), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}

	if err := json.Unmarshal(tc.responseBody, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	actualJSON, _ := json.Marshal(actual)

	if string(expectedJSON) != string(actualJSON) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", string(expectedJSON), string(actualJSON))
	}

	return nil
}

func responseList(tc *TestContext) ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(tc.responseBody, &items); err != nil {
		return nil, fmt.Errorf("response is not a JSON list: %w. Body: %s", err, string(tc.responseBody))
	}
	return items, nil
}

func theResponseShouldBeAListOf(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	items, err := responseList(tc)
	if err != nil {
		return err
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items, got %d. Body: %s", count, len(items), string(tc.responseBody))
	}
	return nil
}

func itemOfTheResponseShouldHave(ctx context.Context, index int, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	items, err := responseList(tc)
	if err != nil {
		return err
	}
	if index < 1 || index > len(items) {
		return fmt.Errorf("item %d out of range, response has %d items", index, len(items))
	}

	expected = tc.interpolate(expected)
	actual := fmt.Sprintf("%v", items[index-1][field])
	if actual != expected {
		return fmt.Errorf("item %d field '%s' expected '%s', got '%s'", index, field, expected, actual)
	}
	return nil
}
