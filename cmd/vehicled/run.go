package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/vehicle-runtime/internal/config"
	"github.com/kubev2v/vehicle-runtime/internal/demo"
	"github.com/kubev2v/vehicle-runtime/internal/diagnostics"
	"github.com/kubev2v/vehicle-runtime/internal/introspect"
	"github.com/kubev2v/vehicle-runtime/internal/logging"
	"github.com/kubev2v/vehicle-runtime/internal/runtime"
	"github.com/kubev2v/vehicle-runtime/pkg/channel"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
	"github.com/kubev2v/vehicle-runtime/pkg/scheduler"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "start the runtime controller and block until shutdown",
		RunE:  runRun,
	}
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(viper.GetViper(), cfgPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg = config.Apply(cfg,
		config.WithLogLevel(viper.GetString("log-level")),
		config.WithLogFormat(viper.GetString("log-format")),
	)

	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	color.Cyan("vehicle-runtime starting (tick period %s)", cfg.Runtime.TickPeriod)

	var observer scheduler.Observer
	var store *diagnostics.Store
	if cfg.Diagnostics.Enabled {
		store, err = diagnostics.OpenWithRetry(context.Background(), cfg.Diagnostics.DatabaseDSN, 5*time.Second)
		if err != nil {
			return fmt.Errorf("opening diagnostics store: %w", err)
		}
		defer store.Close()
		observer = store
	}

	hooks := runtime.Hooks{
		OnError: func(err result.Error, moduleName string, critical bool) {
			zap.S().Named("vehicled").Errorw("module error", "module", moduleName, "critical", critical, "error", err.Error())
		},
	}

	controller := runtime.New(cfg.Runtime.TickPeriod, observer, hooks).
		WithStallDetection(cfg.Runtime.StallCheckInterval, cfg.Runtime.StallThreshold)

	averageOperation := channel.NewOperation[demo.AverageSpeedRequest, demo.AverageSpeedResponse]()

	var speedModule *demo.SpeedModule
	var dashboardModule *demo.DashboardModule
	if cfg.Diagnostics.Enabled {
		recordedSpeed := channel.NewStoreBackedChannel[demo.VehicleSpeed]("vehicle_speed", diagnostics.NewRecorder[demo.VehicleSpeed](store))
		speedModule = demo.NewSpeedModule(recordedSpeed)
		dashboardModule = demo.NewDashboardModule(recordedSpeed, averageOperation)
		controller.RegisterActivationTarget(recordedSpeed)
	} else {
		speedChannel := channel.NewDataElement[demo.VehicleSpeed]()
		speedModule = demo.NewSpeedModule(speedChannel)
		dashboardModule = demo.NewDashboardModule(speedChannel, averageOperation)
		controller.RegisterActivationTarget(speedChannel)
	}

	if err := controller.RegisterModule(speedModule); err != nil {
		return fmt.Errorf("registering speed module: %w", err)
	}
	if err := controller.RegisterModule(dashboardModule); err != nil {
		return fmt.Errorf("registering dashboard module: %w", err)
	}

	if cfg.Introspect.Enabled {
		secret := ""
		if cfg.Introspect.AuthEnabled {
			secret = cfg.Introspect.JWTSecret
		}
		server := introspect.New(cfg.Introspect.Address, controller, secret)
		server.RegisterOperation("computeAverage", func() (any, error) {
			resp := averageOperation.Invoke(demo.AverageSpeedRequest{}).Get()
			return resp, nil
		})
		go func() {
			if err := server.ListenAndServe(); err != nil {
				zap.S().Named("vehicled").Errorw("introspection server stopped", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()
	}

	code := controller.Run()
	os.Exit(code)
	return nil
}
