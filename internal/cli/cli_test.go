package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartspend/backend/config"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/infra/dependency"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
	"github.com/smartspend/backend/internal/testutil"
)

var today = time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC)

// ledgerctl runs the CLI against apiURL and returns stdout.
func ledgerctl(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	opts := &RootOptions{now: func() time.Time { return today }}
	cmd := newRootCommand(opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--api-url", apiURL}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func newAPI(t *testing.T) string {
	t.Helper()
	cfg := config.Load()
	cfg.Server.Environment = "test"

	injector := dependency.NewInjector(cfg, testutil.NewLedgerDB(t), nil)
	server := httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	t.Cleanup(server.Close)
	return server.URL
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ledgerctl", cmd.Use)

	commands := [][]string{
		{"budget"}, {"budget", "set"},
		{"plan", "list"}, {"plan", "add"}, {"plan", "update"}, {"plan", "delete"}, {"plan", "buy"},
		{"log", "list"}, {"log", "add"}, {"log", "update"}, {"log", "delete"},
		{"show"}, {"config"}, {"config", "init"},
	}
	for _, path := range commands {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "command %v should exist", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := ledgerctl(t, "http://127.0.0.1:1", "--format", "yaml", "budget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLoadClientConfig(t *testing.T) {
	t.Run("defaults when missing", func(t *testing.T) {
		cfg, err := LoadClientConfig(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultClientConfig(), cfg)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ledgerctl.toml")
		data := "[api]\nbase_url = \"http://ledger:9000\"\ntimeout = \"3s\"\n\n[sync]\nqueue_size = 8\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cfg, err := LoadClientConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://ledger:9000", cfg.API.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.API.Timeout.Duration)
		assert.Equal(t, 8, cfg.Sync.QueueSize)
		assert.Equal(t, 10*time.Second, cfg.Sync.WriteTimeout.Duration)
	})

	t.Run("env overrides url", func(t *testing.T) {
		t.Setenv("SMARTSPEND_API_URL", "http://env:1234")
		cfg, err := LoadClientConfig(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, "http://env:1234", cfg.API.BaseURL)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ledgerctl.toml")
		require.NoError(t, os.WriteFile(path, []byte("[api]\ntimeout = \"soon\"\n"), 0o600))
		_, err := LoadClientConfig(path)
		assert.Error(t, err)
	})
}

func TestSaveClientConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ledgerctl.toml")
	cfg := DefaultClientConfig()
	cfg.API.BaseURL = "http://saved:8080"

	require.NoError(t, SaveClientConfig(path, cfg))
	loaded, err := LoadClientConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLedgerWorkflow(t *testing.T) {
	api := newAPI(t)

	out, err := ledgerctl(t, api, "budget", "set", "100")
	require.NoError(t, err)
	assert.Equal(t, "Budget: 100.00\n", out)

	out, err = ledgerctl(t, api, "--format", "json", "plan", "add", "Milk", "--qty", "2", "--price", "1.50")
	require.NoError(t, err)
	var planned []dto.PlannedItemResponse
	require.NoError(t, json.Unmarshal([]byte(out), &planned))
	require.Len(t, planned, 1)
	milkID := planned[0].ID
	assert.NotEmpty(t, milkID)

	_, err = ledgerctl(t, api, "plan", "buy", milkID, "--qty", "1", "--cost", "1.45")
	require.NoError(t, err)

	_, err = ledgerctl(t, api, "log", "add", "Gum", "--cost", "0.99", "--date", "2024-06-01")
	require.NoError(t, err)

	out, err = ledgerctl(t, api, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2")

	out, err = ledgerctl(t, api, "--format", "json", "show")
	require.NoError(t, err)
	var shown struct {
		Summary struct {
			TotalActual     json.Number `json:"totalActual"`
			RemainingBudget json.Number `json:"remainingBudget"`
		} `json:"summary"`
		Ledger struct {
			ActualItems []dto.ActualItemResponse `json:"actualItems"`
		} `json:"ledger"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "2.44", shown.Summary.TotalActual.String())
	assert.Equal(t, "97.56", shown.Summary.RemainingBudget.String())
	require.Len(t, shown.Ledger.ActualItems, 2)
	assert.Equal(t, "2024-06-03", shown.Ledger.ActualItems[0].Date)
	assert.Equal(t, "Milk", shown.Ledger.ActualItems[0].Name)

	_, err = ledgerctl(t, api, "plan", "delete", milkID)
	require.NoError(t, err)

	out, err = ledgerctl(t, api, "--format", "json", "log", "list")
	require.NoError(t, err)
	var logged []dto.ActualItemResponse
	require.NoError(t, json.Unmarshal([]byte(out), &logged))
	require.Len(t, logged, 2)
	for _, item := range logged {
		assert.Nil(t, item.PlannedItemID, "expected %s to be detached", item.Name)
	}
}

func TestLogUpdateRelinks(t *testing.T) {
	api := newAPI(t)

	out, err := ledgerctl(t, api, "--format", "json", "plan", "add", "Coffee", "--qty", "3", "--price", "8")
	require.NoError(t, err)
	var planned []dto.PlannedItemResponse
	require.NoError(t, json.Unmarshal([]byte(out), &planned))

	out, err = ledgerctl(t, api, "--format", "json", "log", "add", "Beans", "--qty", "2", "--cost", "15")
	require.NoError(t, err)
	var logged []dto.ActualItemResponse
	require.NoError(t, json.Unmarshal([]byte(out), &logged))

	_, err = ledgerctl(t, api, "log", "update", logged[0].ID, "--plan", planned[0].ID)
	require.NoError(t, err)

	out, err = ledgerctl(t, api, "--format", "json", "plan", "list")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &planned))
	assert.Equal(t, 2, planned[0].PurchasedQuantity)

	_, err = ledgerctl(t, api, "log", "update", logged[0].ID, "--unlink")
	require.NoError(t, err)

	out, err = ledgerctl(t, api, "--format", "json", "plan", "list")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &planned))
	assert.Equal(t, 0, planned[0].PurchasedQuantity)
}

func TestRejectedActions(t *testing.T) {
	api := newAPI(t)

	tests := []struct {
		name string
		args []string
		kind error
	}{
		{"unknown plan reference", []string{"log", "add", "Gum", "--cost", "1", "--plan", "missing"}, domainerror.ErrValidation},
		{"zero quantity", []string{"log", "add", "Gum", "--cost", "1", "--qty", "0"}, domainerror.ErrValidation},
		{"buy unknown plan", []string{"plan", "buy", "missing", "--cost", "1"}, domainerror.ErrNotFound},
		{"delete unknown purchase", []string{"log", "delete", "missing"}, domainerror.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledgerctl(t, api, tt.args...)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	_, err := ledgerctl(t, api, "budget", "set", "lots")
	assert.ErrorContains(t, err, "invalid amount")
}

func TestUnreachableAPI(t *testing.T) {
	server := httptest.NewServer(nil)
	url := server.URL
	server.Close()

	_, err := ledgerctl(t, url, "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrStorage)
}
