package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/1F35C/signature-verifier/trustedkey"
)

func newKeyCmd(a *app) *cobra.Command {
	var armored bool
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the embedded release signing key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := trustedkey.Key()
			if err != nil {
				return err
			}
			if armored {
				text, err := key.Armor()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}
			bits, err := key.GetBitLength()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOutput {
				return json.NewEncoder(out).Encode(struct {
					Fingerprint string    `json:"fingerprint"`
					KeyID       string    `json:"key_id"`
					Algorithm   string    `json:"algorithm"`
					Bits        int       `json:"bits"`
					Created     time.Time `json:"created"`
				}{key.GetFingerprint(), key.GetHexKeyID(), key.GetAlgorithm(), bits, key.CreationTime().UTC()})
			}

			_, err = fmt.Fprintf(out, "fingerprint: %s\nkey id:      %s\nalgorithm:   %s%d\ncreated:     %s\n",
				key.GetFingerprint(), key.GetHexKeyID(), key.GetAlgorithm(), bits,
				key.CreationTime().UTC().Format(time.RFC3339))
			return err
		},
	}
	cmd.Flags().BoolVar(&armored, "armor", false, "print the key as an armored public key block")
	return cmd
}
