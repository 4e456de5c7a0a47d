package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/contact/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the contactd configuration",
	}
	cmd.AddCommand(configInitCmd(), configValidateCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Long: `Write every setting with its default value.

The format follows the file extension; the default is contact.json in the
current directory. An existing file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigName + ".json"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefaults(path, force); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			source := cfg.Path()
			if source == "" {
				source = "defaults and environment"
			}
			success(w, "Configuration is valid")
			info(w, "Source: %s", source)
			info(w, "Listen: %s", cfg.Server.Addr)
			info(w, "Sinks:  %v", cfg.Inbox.Sinks)
			return nil
		},
	}
}
