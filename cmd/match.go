package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Follow matches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "live MATCH_ID",
		Short: "Show the live state of a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := matchIDArg(args[0])
			if err != nil {
				return err
			}

			app.router.Enter(matchLiveView(matchID))
			resp, err := app.gateway.Get(cmd.Context(), "/matches/"+url.PathEscape(matchID)+"/")
			if err != nil {
				return err
			}
			return writeJSONBody(cmd, resp.Body)
		},
	})

	return cmd
}

func matchLiveView(matchID string) string {
	return "/matches/" + url.PathEscape(matchID) + "/live"
}

func matchIDArg(raw string) (string, error) {
	matchID := strings.TrimSpace(raw)
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	return matchID, nil
}
