package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/ingest"
)

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Put, get and verify raw blocks in the on-disk store",
	}
	cmd.AddCommand(newStorePutCmd(), newStoreGetCmd(), newStoreVerifyCmd())
	return cmd
}

func newStorePutCmd() *cobra.Command {
	var inputPath string
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Ingest a file (or stdin) as a sequence of raw blocks, printing one checksum per block",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			in := os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			assembler := ingest.NewAssembler(store.BlockSize().Bytes(), func(chunk []byte, final bool) error {
				length := len(chunk)
				block, err := blockmodel.From(blockmodel.FromParams{
					Type:             blockmodel.RawData,
					DataType:         blockmodel.RawDataType,
					BlockSize:        store.BlockSize(),
					Data:             chunk,
					ActualDataLength: &length,
				})
				if err != nil {
					return err
				}
				if err := store.SetData(block); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), block.IDChecksum.String())
				return nil
			})

			buf := make([]byte, 64*1024)
			for {
				n, err := in.Read(buf)
				if n > 0 {
					if werr := assembler.Write(buf[:n]); werr != nil {
						return werr
					}
				}
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}
			}
			return assembler.Close()
		},
	}
	cmd.Flags().StringVar(&inputPath, "in", "", "input file path (defaults to stdin)")
	return cmd
}

func newStoreGetCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "get <checksum-hex>",
		Short: "Read a block's payload by its content address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			checksum, err := blockmodel.ChecksumFromHex(args[0])
			if err != nil {
				return err
			}
			block, err := store.GetData(checksum)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			_, err = out.Write(block.Data)
			return err
		},
	}
	cmd.Flags().StringVar(&outputPath, "out", "", "output file path (defaults to stdout)")
	return cmd
}

func newStoreVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <checksum-hex>",
		Short: "Stream a block's content and recompute its checksum, reporting corruption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			checksum, err := blockmodel.ChecksumFromHex(args[0])
			if err != nil {
				return err
			}
			h := store.Get(checksum)
			if err := h.ValidateAsync(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	return cmd
}
