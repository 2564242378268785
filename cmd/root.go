package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// skipWireAnnotation marks commands that run without config or session.
const skipWireAnnotation = "pitchside/skip-wire"

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	app := &app{}
	v := viper.New()
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "pitchside",
		Short:         "Pitchside: cricket platform client",
		Long:          "pitchside signs you in to the cricket platform, keeps the session fresh across runs, and follows live match chat from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}
			if configPath != "" {
				v.SetConfigFile(configPath)
			}

			wired, err := wireApp(cmd.Context(), v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $PITCHSIDE_HOME/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newSignUpCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newAPICmd(app),
		newTournamentsCmd(app),
		newMatchCmd(app),
		newChatCmd(app),
	)

	return rootCmd
}
