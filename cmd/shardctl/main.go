// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shardctl encodes, decodes, and inspects shardkey external
// strings, and exercises the foreign-shards and merge algebra from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "shardctl",
		Short: "Inspect and manipulate shardkey identifiers",
		Long:  "shardctl encodes, decodes, and inspects shard-key identifiers and runs their collection algebra (foreign-shards, merge) from the command line.",
	}

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newInspectCmd(),
		newForeignShardsCmd(),
		newMergeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shardctl version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("shardctl 1.0.0")
		},
	}
}
