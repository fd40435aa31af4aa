// Command brightchain is the operator-facing CLI for the block engine:
// store put/get/verify, CBL assemble/extract, XOR combine, quorum
// seal/unseal, and a bench command for local throughput checks.
package main

import (
	"os"

	"github.com/JessicaMulein/BrightChain/internal/processhardening"
	"github.com/JessicaMulein/BrightChain/internal/tlog"
)

func main() {
	processhardening.New().HardenProcess()

	if err := newRootCmd().Execute(); err != nil {
		tlog.Error.Printf("%v", err)
		os.Exit(1)
	}
}
