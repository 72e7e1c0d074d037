package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/catalog-cms/internal/auth"
)

func newTokenCmd(env *cmdEnv) *cobra.Command {
	var (
		subject string
		roleID  int
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed admin token for the auth cookie",
		Long: `token signs a session token with JWT_SECRET. Send it as the
"token" cookie (or AUTH_COOKIE) when calling the API by hand.`,
		Example: `  curl --cookie "token=$(cmsctl token --sub 1)" localhost:8080/api/displays`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env.cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			tok, err := auth.Issue(env.cfg.Auth.JWTSecret, subject, roleID, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "1", "user id stored in the token")
	cmd.Flags().IntVar(&roleID, "role", 1, "role id stored in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
