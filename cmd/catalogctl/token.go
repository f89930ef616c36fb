package main

import (
	"errors"
	"fmt"

	"catalog/internal/services"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the protected endpoints",
		Args:  cobra.NoArgs,
		RunE:  runToken,
	}
	cmd.Flags().String("subject", "", "token subject (sub claim)")
	cmd.Flags().Duration("ttl", 0, "token lifetime (default: JWT_EXPIRES_IN)")
	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if subject == "" {
		return errors.New("--subject is required")
	}
	if ttl < 0 {
		return errors.New("--ttl must not be negative")
	}
	if ttl == 0 {
		ttl = cfg.JWT.ExpiresIn
	}

	authService, err := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.ExpiresIn)
	if err != nil {
		return err
	}
	token, err := authService.IssueToken(subject, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
