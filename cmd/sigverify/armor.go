package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1F35C/signature-verifier/armor"
	"github.com/1F35C/signature-verifier/constants"
)

func newArmorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "armor [FILE|-]",
		Short: "Check the armor shape of a message without verifying it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			report := armor.Inspect(text)
			hint := armorHint(text)
			out := cmd.OutOrStdout()
			if a.jsonOutput {
				err = json.NewEncoder(out).Encode(struct {
					Valid           bool   `json:"valid"`
					Structured      bool   `json:"structured"`
					SignatureLength int    `json:"signature_length"`
					Hint            string `json:"hint,omitempty"`
				}{report.Valid(), report.Structured, report.SignatureLength, hint})
			} else {
				_, err = fmt.Fprintf(out, "valid: %t\nstructured: %t\nsignature length: %d (want %d)\n",
					report.Valid(), report.Structured, report.SignatureLength, constants.SignatureBodyLength)
				if err == nil && hint != "" {
					_, err = fmt.Fprintf(out, "hint: %s\n", hint)
				}
			}
			if err != nil {
				return err
			}

			if !report.Valid() {
				return errNotVerified
			}
			return nil
		},
	}
}
