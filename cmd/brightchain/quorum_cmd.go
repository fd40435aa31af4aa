package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JessicaMulein/BrightChain/internal/member"
	"github.com/JessicaMulein/BrightChain/internal/quorum"
)

func newQuorumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quorum",
		Short: "Seal a secret behind a Shamir quorum of members, or unseal it back",
	}
	cmd.AddCommand(newQuorumSealCmd(), newQuorumUnsealCmd())
	return cmd
}

// parseMemberFlag parses a --member spec into a Member. Three forms are
// accepted:
//
//	id:pubkeyhex                 public-key-only member (a seal recipient)
//	id:pubkeyhex:privkeyhex      raw private key, for scripted/test use
//	id:pubkeyhex:enc:path        private key unlocked from an Argon2id
//	                             passphrase-protected key file (see
//	                             `member keygen`); passphrase supplies the
//	                             passphrase.
func parseMemberFlag(spec string, passphrase string) (*member.Member, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) < 2 {
		return nil, fmt.Errorf("quorum: malformed --member %q, want id:pubkeyhex[:privkeyhex|:enc:path]", spec)
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, err
	}
	pub, err := hex.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	m := member.NewFromPublicKey(id, pub)

	switch len(parts) {
	case 3:
		priv, err := hex.DecodeString(parts[2])
		if err != nil {
			return nil, err
		}
		m.LoadPrivateKey(priv)
	case 4:
		if parts[2] != "enc" {
			return nil, fmt.Errorf("quorum: unknown --member key form %q, want enc", parts[2])
		}
		if passphrase == "" {
			return nil, fmt.Errorf("quorum: --passphrase is required to unlock %s", parts[3])
		}
		priv, err := readEncryptedKeyFile(parts[3], []byte(passphrase))
		if err != nil {
			return nil, err
		}
		m.LoadPrivateKey(priv)
	}
	return m, nil
}

func newQuorumSealCmd() *cobra.Command {
	var memberSpecs []string
	var sharesRequired int
	var passphrase string
	cmd := &cobra.Command{
		Use:   "seal <secret>",
		Short: "Symmetric-encrypt a secret and Shamir-split its key across --member recipients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members := make([]*member.Member, len(memberSpecs))
			for i, spec := range memberSpecs {
				m, err := parseMemberFlag(spec, passphrase)
				if err != nil {
					return err
				}
				members[i] = m
			}

			record, err := quorum.Seal(uuid.New(), args[0], members, sharesRequired)
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&memberSpecs, "member", nil, "id:pubkeyhex for a recipient member (repeatable)")
	cmd.Flags().IntVar(&sharesRequired, "shares-required", 0, "threshold (0 = require all members)")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "passphrase unlocking any --member ...:enc:path entries")
	return cmd
}

func newQuorumUnsealCmd() *cobra.Command {
	var memberSpecs []string
	var passphrase string
	cmd := &cobra.Command{
		Use:   "unseal <record-json>",
		Short: "Recover a sealed secret given a JSON QuorumDataRecord and --member entries carrying private keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record quorum.QuorumDataRecord
			if err := json.Unmarshal([]byte(args[0]), &record); err != nil {
				return err
			}

			members := make([]*member.Member, len(memberSpecs))
			for i, spec := range memberSpecs {
				m, err := parseMemberFlag(spec, passphrase)
				if err != nil {
					return err
				}
				members[i] = m
			}
			defer func() {
				for _, m := range members {
					m.Wipe()
				}
			}()

			var secret string
			if err := quorum.Unseal(&record, members, &secret); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&memberSpecs, "member", nil,
		"id:pubkeyhex:privkeyhex, or id:pubkeyhex:enc:path to a key file from `member keygen` (repeatable)")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "passphrase unlocking any --member ...:enc:path entries")
	return cmd
}
