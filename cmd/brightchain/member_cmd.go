package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JessicaMulein/BrightChain/internal/member"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage member identities used as quorum recipients",
	}
	cmd.AddCommand(newMemberKeygenCmd())
	return cmd
}

// newMemberKeygenCmd generates a fresh Member identity and writes its
// private key to disk behind an Argon2id-derived passphrase, printing the
// "id:pubkeyhex" pair that other commands' --member flags expect.
func newMemberKeygenCmd() *cobra.Command {
	var keyFile string
	var passphrase string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a Member and write its private key behind a passphrase-protected key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("member keygen: --passphrase must not be empty")
			}
			m, err := member.New()
			if err != nil {
				return err
			}
			priv, err := m.PrivateKey()
			if err != nil {
				return err
			}
			if err := writeEncryptedKeyFile(keyFile, []byte(passphrase), priv); err != nil {
				return err
			}
			m.Wipe()

			fmt.Fprintf(cmd.OutOrStdout(), "%s:%s\n", m.ID, hex.EncodeToString(m.PublicKey))
			return nil
		},
	}
	cmd.Flags().StringVar(&keyFile, "key-file", "", "path to write the passphrase-protected private key")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "passphrase protecting the key file")
	_ = cmd.MarkFlagRequired("key-file")
	_ = cmd.MarkFlagRequired("passphrase")
	return cmd
}
