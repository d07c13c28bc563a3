package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("grouporder exited")
	}
}

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	envFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "grouporder",
		Short:         "Group food ordering backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading configuration")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newGatewayCommand(opts))
	cmd.AddCommand(newRelayCommand(opts))
	cmd.AddCommand(newSeedMenuCommand(opts))

	return cmd
}
