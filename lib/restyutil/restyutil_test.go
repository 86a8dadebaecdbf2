package restyutil

import (
	"context"
	"leagueexport/lib/telemetry"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	lock     sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.messages[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:restyutil")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Set-Cookie", "session=secret")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	out := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, "test", out)

	res, err := client.R().
		SetContext(context.Background()).
		SetHeader("Authorization", "Bearer secret").
		Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "hello", res.String())

	require.Len(t, out.messages, 1)
	for id, message := range out.messages {
		require.Equal(t, "test-1", id)
		require.Contains(t, message, "hello")
		require.NotContains(t, message, "secret")
	}
}

func TestFormatHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("B", "2")
	headers.Set("A", "1")
	headers.Set("Authorization", "Bearer x")
	require.Equal(t, "A: 1\nAuthorization: <redacted>\nB: 2", formatHeaders(headers))
}

func TestRedactBody(t *testing.T) {
	form := redactBody(
		"application/x-www-form-urlencoded",
		"client_id=abc&client_secret=shh&grant_type=refresh_token&refresh_token=tok",
	)
	require.NotContains(t, form, "shh")
	require.NotContains(t, form, "=tok")
	require.Contains(t, form, "client_id=abc")
	require.Contains(t, form, "grant_type=refresh_token")

	json := redactBody(
		"application/json",
		`{"access_token": "aaa","refresh_token":"bbb","expires_in":3600}`,
	)
	require.Equal(t, `{"access_token": "<redacted>","refresh_token":"<redacted>","expires_in":3600}`, json)

	require.Equal(t, "<fantasy_content/>", redactBody("application/xml", "<fantasy_content/>"))
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resty")
	out, err := NewFilesystemOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	out.Write("yahoo-1", "contents")

	written, err := os.ReadFile(filepath.Join(dir, "yahoo-1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, strings.HasPrefix(string(written), "contents"))
}
