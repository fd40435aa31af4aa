package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/handle"
	"github.com/JessicaMulein/BrightChain/internal/xortuple"
)

func newXorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xor",
		Short: "Combine stored blocks via the N-way XOR pipeline",
	}
	cmd.AddCommand(newXorCombineCmd())
	return cmd
}

func newXorCombineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine <checksum-hex>...",
		Short: fmt.Sprintf("XOR exactly %d equally-sized blocks and persist the result", xortuple.TupleSize),
		Args:  cobra.ExactArgs(xortuple.TupleSize),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			handles := make([]*handle.Handle, len(args))
			for i, arg := range args {
				checksum, err := blockmodel.ChecksumFromHex(arg)
				if err != nil {
					return err
				}
				handles[i] = store.Get(checksum)
			}

			tuple, err := xortuple.NewBlockHandleTuple(handles)
			if err != nil {
				return err
			}
			derived, err := store.Xor(cmd.Context(), tuple)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), derived.IDChecksum.String())
			return nil
		},
	}
	return cmd
}
