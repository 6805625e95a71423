package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/smbc/backend/internal/infrastructure/auth"
)

func newTokenCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer token utilities",
	}
	cmd.AddCommand(newTokenIssueCommand(configPath))
	return cmd
}

func newTokenIssueCommand(configPath *string) *cobra.Command {
	var (
		user       string
		username   string
		role       string
		department string
		ttl        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := uuid.New()
			if user != "" {
				id, err := uuid.Parse(user)
				if err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
				userID = id
			}

			rt, err := openRuntime(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			token, expiresAt, err := auth.NewJWTService(rt.cfg.JWT).Issue(auth.IssueInput{
				UserID:     userID,
				Username:   username,
				Role:       role,
				Department: department,
				TTL:        ttl,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			_, err = fmt.Fprintf(out, "user %s expires %s\n", userID, expiresAt.Format(time.RFC3339))
			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user id (default: random)")
	cmd.Flags().StringVar(&username, "username", "", "username claim")
	cmd.Flags().StringVar(&role, "role", "", "role claim, e.g. Admin")
	cmd.Flags().StringVar(&department, "department", "", "department claim: Construction, Carenderia, Catering or Corporate (required)")
	_ = cmd.MarkFlagRequired("department")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: jwt.expiration)")
	return cmd
}
