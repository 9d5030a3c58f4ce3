package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kubev2v/vehicle-runtime/internal/config"
	"github.com/kubev2v/vehicle-runtime/internal/diagnostics"
	"github.com/kubev2v/vehicle-runtime/internal/diagnostics/report"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "diagnostics history commands",
	}
	reportCmd.AddCommand(newReportExportCommand())
	return reportCmd
}

func newReportExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export <path>",
		Short: "export the diagnostics history to an .xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runReportExport,
	}
	return exportCmd
}

func runReportExport(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(viper.GetViper(), cfgPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := diagnostics.Open(cfg.Diagnostics.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("opening diagnostics store: %w", err)
	}
	defer store.Close()

	if err := report.Export(context.Background(), store, args[0]); err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
