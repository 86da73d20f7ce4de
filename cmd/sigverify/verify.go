package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1F35C/signature-verifier/state"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [FILE|-]",
		Short: "Verify a cleartext-signed message",
		Long: `Verify a cleartext-signed message read from FILE or stdin against the
embedded release signing key. The exit status is 0 only when the signature
verified.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}

			c := state.NewController(engine, state.WithLogger(a.logger.Named("state")))
			defer c.Close()

			c.SetInput(cmd.Context(), text)
			result, err := c.Wait(cmd.Context())
			if err != nil {
				return err
			}
			if err := renderState(cmd.OutOrStdout(), result, a.jsonOutput); err != nil {
				return err
			}
			if _, ok := result.(state.Failed); ok {
				if hint := armorHint(text); hint != "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "hint: %s\n", hint)
				}
			}
			if _, ok := result.(state.Succeeded); !ok {
				return errNotVerified
			}
			return nil
		},
	}
}
