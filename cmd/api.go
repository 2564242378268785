package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bnema/pitchside/internal/adapters/gateway"
	"github.com/spf13/cobra"
)

const dashboardView = "/dashboard"

func newAPICmd(app *app) *cobra.Command {
	var data string
	var view string

	cmd := &cobra.Command{
		Use:   "api METHOD PATH",
		Short: "Send a request through the session-aware gateway",
		Long:  "api sends one REST call with the stored session. An expired access cookie is refreshed once and the call retried; a rejected refresh signs you out unless --view names a public view.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(strings.TrimSpace(args[0]))
			switch method {
			case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				return fmt.Errorf("unsupported method %q", args[0])
			}

			req := gateway.Request{Method: method, Path: args[1]}
			if strings.TrimSpace(data) != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data must be valid JSON")
				}
				req.Body = json.RawMessage(data)
			}

			app.router.Enter(view)
			resp, err := app.gateway.Do(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSONBody(cmd, resp.Body)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	cmd.Flags().StringVar(&view, "view", dashboardView, "View the call is made from")

	return cmd
}

// writeJSONBody pretty-prints JSON bodies and copies anything else verbatim.
func writeJSONBody(cmd *cobra.Command, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, trimmed, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(trimmed)
	}
	pretty.WriteByte('\n')

	_, err := cmd.OutOrStdout().Write(pretty.Bytes())
	return err
}
