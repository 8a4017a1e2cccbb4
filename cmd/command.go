// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "yum-repo-server",
	Short: "yum-repo-server - RPM artifact delivery server",
	Long: `yum-repo-server serves RPM repository artifacts over HTTP with
byte-range support, backed by pluggable storage (local disk or S3).`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&utils.ConfigurationFileDirectory, "config_dir", ".", "Directory for configuration files")
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
