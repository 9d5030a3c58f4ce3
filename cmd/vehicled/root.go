package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
)

var (
	configFlag = &cobraflags.StringFlag{
		Flag: cobraflags.Flag{
			Name:  "config",
			Usage: "path to a config file (yaml/json/toml)",
		},
	}
	logLevelFlag = &cobraflags.StringFlag{
		Flag: cobraflags.Flag{
			Name:  "log-level",
			Usage: "log level: debug, info, warn, error",
		},
		Value: "info",
	}
	logFormatFlag = &cobraflags.StringFlag{
		Flag: cobraflags.Flag{
			Name:  "log-format",
			Usage: "log format: console, json",
		},
		Value: "console",
	}
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vehicled",
		Short:         "vehicle-runtime executable controller",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cobraflags.RegisterFlag(root.PersistentFlags(), configFlag)
	cobraflags.RegisterFlag(root.PersistentFlags(), logLevelFlag)
	cobraflags.RegisterFlag(root.PersistentFlags(), logFormatFlag)
	root.PersistentPreRunE = cobrautil.SyncViperPreRunE("vehicled")

	root.AddCommand(newRunCommand())
	root.AddCommand(newReportCommand())
	return root
}
