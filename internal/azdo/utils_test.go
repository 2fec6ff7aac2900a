package azdo

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/sethvargo/go-githubactions"
)

// testServerResHandler returns a basic mux server route handler function
func testServerResHandler(t *testing.T, code int, resBody string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)

		_, err := fmt.Fprint(w, resBody)
		if err != nil {
			t.Fatal(err)
		}
	}
}

// newTestAction returns an action that logs to the returned buffer
func newTestAction() (*githubactions.Action, *bytes.Buffer) {
	var b bytes.Buffer

	return githubactions.New(
		githubactions.WithWriter(&b),
		githubactions.WithGetenv(func(string) string { return "" }),
	), &b
}

// newTestClient returns an Azure DevOps API client pointed at the provided address
func newTestClient(t *testing.T, address string, log Logger) *Client {
	client, err := NewClient(&Config{
		Address:      address,
		Organization: "org",
		Project:      "project",
		Token:        "12345",
		SessionID:    "session",
		Logger:       log,
	})
	if err != nil {
		t.Fatal(err)
	}

	return client
}
