package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var (
	apiFlag   string
	roleFlag  string
	actorFlag string
)

// BindFlags registers the global connection and identity flags on the root
// command. Flags override the TAGWATCH_* environment variables.
func BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&apiFlag, "api", "", "API base URL (default $TAGWATCH_API_URL or "+defaultAPIURL+")")
	cmd.PersistentFlags().StringVar(&roleFlag, "role", "", "role to act as: operator, admin or auditor (default $TAGWATCH_ROLE or operator)")
	cmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "actor id recorded in the audit trail (default $TAGWATCH_ACTOR or cli)")
}

// APIURL returns the base URL for the tagwatch API.
func APIURL() string {
	if apiFlag != "" {
		return apiFlag
	}
	if v := os.Getenv("TAGWATCH_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Role returns the role token sent with every request.
func Role() string {
	if roleFlag != "" {
		return roleFlag
	}
	if v := os.Getenv("TAGWATCH_ROLE"); v != "" {
		return v
	}
	return "operator"
}

// Actor returns the actor id sent with every request.
func Actor() string {
	if actorFlag != "" {
		return actorFlag
	}
	if v := os.Getenv("TAGWATCH_ACTOR"); v != "" {
		return v
	}
	return "cli"
}

// Do performs an API call with the identity headers applied and decodes the
// JSON response into out when out is non-nil. Error responses surface the
// server's error message.
func Do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, APIURL()+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Role", Role())
	req.Header.Set("X-Actor", Actor())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
