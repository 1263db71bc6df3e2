package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	addr := ""
	printToken := false
	ttl := serve.DefaultTokenTTL

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner HTTP API.",
		Long: `Serve the JSON API for tasks, projects, habits, calendar views, drops and
the Google Calendar boundary. Set server.jwt_secret to require bearer tokens;
--print-token prints one signed with that secret before serving.`,
		Example: `
planner serve
planner serve --addr=:9000 --print-token
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.SetFormatter(&log.JSONFormatter{})
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := serve.Serve{
				Service:    svc,
				Settings:   s,
				Addr:       addr,
				PrintToken: printToken,
				TokenTTL:   ttl,
				Out:        cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; defaults to server.addr.")
	cmd.Flags().BoolVar(&printToken, "print-token", false, "Print a bearer token before serving.")
	cmd.Flags().DurationVar(&ttl, "token-ttl", ttl, "Lifetime of the printed token.")
	topLevel.AddCommand(cmd)
}
