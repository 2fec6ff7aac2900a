package action

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/sethvargo/go-githubactions"
	"github.com/takescoop/azure-devops-variable-group-action/internal/azdo"
)

// testServerResHandler returns a basic mux server route handler function
func testServerResHandler(t *testing.T, code int, resBody string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
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

// newTestAzureClient returns an Azure DevOps API client pointed at the provided address
func newTestAzureClient(t *testing.T, address string) *azdo.Client {
	client, err := azdo.NewClient(&azdo.Config{
		Address:      address,
		Organization: "org",
		Project:      "project",
		Token:        "12345",
	})
	if err != nil {
		t.Fatal(err)
	}

	return client
}

// mapGetenv looks variables up in a fixed environment
func mapGetenv(environment map[string]string) func(string) string {
	return func(key string) string {
		return environment[key]
	}
}

func boolPtr(b bool) *bool {
	return &b
}
