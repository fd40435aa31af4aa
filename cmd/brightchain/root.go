package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/blockstore"
	"github.com/JessicaMulein/BrightChain/internal/tlog"
)

var cfg = viper.New()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brightchain",
		Short:         "Content-addressed encrypted block storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			tlog.SetLevel(cfg.GetString("log-level"))
			return nil
		},
	}

	pflags := root.PersistentFlags()
	pflags.String("store-root", "./brightchain-store", "root directory of the on-disk block store")
	pflags.String("block-size", "small", "block size label: message|tiny|small|medium|large|huge")
	pflags.String("log-level", "info", "log level: debug|info|warn|error")
	pflags.String("config", "", "path to a brightchain config file (yaml/json/toml, viper-loaded)")

	_ = cfg.BindPFlags(pflags)
	cfg.SetEnvPrefix("brightchain")
	cfg.AutomaticEnv()

	cobra.OnInitialize(func() {
		if path := cfg.GetString("config"); path != "" {
			cfg.SetConfigFile(path)
			_ = cfg.ReadInConfig()
		}
	})

	root.AddCommand(
		newStoreCmd(),
		newCBLCmd(),
		newXorCmd(),
		newQuorumCmd(),
		newMemberCmd(),
		newBenchCmd(),
	)
	return root
}

// openStore resolves the configured store-root/block-size pair into a
// ready Store backed by the real filesystem.
func openStore() (*blockstore.Store, error) {
	label := cfg.GetString("block-size")
	size, ok := blockmodel.BlockSizeFromLabel(label)
	if !ok {
		return nil, fmt.Errorf("unknown block size %q", label)
	}
	return blockstore.New(afero.NewOsFs(), cfg.GetString("store-root"), size), nil
}
