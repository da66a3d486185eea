// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-overload inspects and demonstrates overload blocks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-overload/internal/logger"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-overload",
		Short: "Multiple dispatch for object system classes",
		Long:  "go-overload finds overload blocks in Go source and reports the definitions and dispatch groups they install.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(viper.GetString("log-format"), viper.GetBool("verbose"), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().String("parser", "go", "Parser backend (go or treesitter)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	// Bind flags to viper.
	viper.BindPFlag("parser", rootCmd.PersistentFlags().Lookup("parser"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Env vars: GO_OVERLOAD_PARSER, GO_OVERLOAD_VERBOSE, etc.
	viper.SetEnvPrefix("GO_OVERLOAD")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-overload")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-overload version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go-overload %s\n", version)
		},
	}
}
