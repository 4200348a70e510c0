// Copyright 2026 The shardkey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dataforge/shardkey"
)

func newEncodeCmd() *cobra.Command {
	var origin string
	var shard int16
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "encode <record>",
		Short: "Encode an origin/shard/record into a shardkey external string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(origin) != 1 {
				return fmt.Errorf("--origin must be exactly one byte, got %q", origin)
			}
			f, err := parseKindValue(kind(typeFlag), args[0])
			if err != nil {
				return err
			}
			s, err := encodeField(origin[0], shard, f)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "single-byte origin character")
	cmd.Flags().Int16Var(&shard, "shard", 0, "shard id")
	cmd.Flags().StringVar(&typeFlag, "type", string(kindInt64), "record type: int32, int64, string, or guid")
	cmd.MarkFlagRequired("origin")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "decode <external-string>",
		Short: "Decode a shardkey external string back to origin/shard/record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, shard, record, err := decodeField(kind(typeFlag), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("origin=%q shard=%d record=%s\n", origin, shard, formatFieldValue(record))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", string(kindInt64), "record type: int32, int64, string, or guid")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "inspect <external-string>",
		Short: "Print the origin, shard id, record, and emptiness of a shardkey external string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, shard, record, err := decodeField(kind(typeFlag), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("origin:        %q\n", origin)
			fmt.Printf("shard id:      %d\n", shard)
			fmt.Printf("record (%s): %s\n", typeFlag, formatFieldValue(record))
			fmt.Printf("empty:         %v\n", origin == shardkey.EmptyOrigin && record.IsZero())
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", string(kindInt64), "record type: int32, int64, string, or guid")
	return cmd
}

func newForeignShardsCmd() *cobra.Command {
	var self string
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "foreign-shards <candidate>...",
		Short: "Group candidate keys by shard, excluding the shard --self is on",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForeignShards(kind(typeFlag), self, args)
		},
	}

	cmd.Flags().StringVar(&self, "self", "", "the external string to compare candidates against")
	cmd.Flags().StringVar(&typeFlag, "type", string(kindInt64), "record type: int32, int64, string, or guid")
	cmd.MarkFlagRequired("self")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var original, replacements []string
	var typeFlag string
	var appendUnmatched bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Replace-by-key-equality original with replacements, printing the resulting list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(kind(typeFlag), original, replacements, appendUnmatched)
		},
	}

	cmd.Flags().StringSliceVar(&original, "original", nil, "repeatable: external strings making up the original list")
	cmd.Flags().StringSliceVar(&replacements, "replacements", nil, "repeatable: external strings to substitute by key equality")
	cmd.Flags().StringVar(&typeFlag, "type", string(kindInt64), "record type: int32, int64, string, or guid")
	cmd.Flags().BoolVar(&appendUnmatched, "append-unmatched", false, "append replacements with no matching original key")
	return cmd
}
