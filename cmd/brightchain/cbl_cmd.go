package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/ecies"
	"github.com/JessicaMulein/BrightChain/internal/ingest"
)

func newCBLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cbl",
		Short: "Assemble a file into raw blocks plus a signed CBL index, or extract one back out",
	}
	cmd.AddCommand(newCBLAssembleCmd(), newCBLExtractCmd())
	return cmd
}

func newCBLAssembleCmd() *cobra.Command {
	var inputPath string
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Ingest a file as raw blocks and emit a CBL referencing them",
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

			pub, priv, err := ecies.GenerateKeyPair()
			if err != nil {
				return err
			}
			creator := uuid.New()

			var addresses []blockmodel.ChecksumBuffer
			var total uint64
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
				addresses = append(addresses, block.IDChecksum)
				total += uint64(length)
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
			if err := assembler.Close(); err != nil {
				return err
			}

			cbl, err := blockmodel.NewCBL(store.BlockSize(), addresses, total, 3, &creator, priv)
			if err != nil {
				return err
			}
			if err := store.SetData(cbl.Block); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cbl-checksum: %s\n", cbl.IDChecksum.String())
			fmt.Fprintf(out, "creator-public-key: %s\n", hex.EncodeToString(pub))
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "in", "", "input file path (defaults to stdin)")
	return cmd
}

func newCBLExtractCmd() *cobra.Command {
	var outputPath, publicKeyHex string
	cmd := &cobra.Command{
		Use:   "extract <cbl-checksum-hex>",
		Short: "Decode a CBL, verify its signature, and reassemble the original file",
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
			cbl, err := blockmodel.DecodeCBL(block)
			if err != nil {
				return err
			}

			if publicKeyHex != "" {
				pub, err := hex.DecodeString(publicKeyHex)
				if err != nil {
					return err
				}
				if !cbl.VerifySignature(pub) {
					return fmt.Errorf("cbl: signature verification failed")
				}
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

			var written uint64
			for _, addr := range cbl.Addresses() {
				data, err := store.GetData(addr)
				if err != nil {
					return err
				}
				remaining := cbl.OriginalDataLength - written
				chunk := data.Data
				if uint64(len(chunk)) > remaining {
					chunk = chunk[:remaining]
				}
				if _, err := out.Write(chunk); err != nil {
					return err
				}
				written += uint64(len(chunk))
				if written >= cbl.OriginalDataLength {
					break
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outputPath, "out", "", "output file path (defaults to stdout)")
	cmd.Flags().StringVar(&publicKeyHex, "creator-public-key", "", "hex-encoded creator public key to verify the CBL signature against")
	return cmd
}
