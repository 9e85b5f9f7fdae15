package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"service_print_receipt/internal/config"
	"service_print_receipt/internal/driver"
	"service_print_receipt/internal/escpos"
	"service_print_receipt/internal/handlers"
	"service_print_receipt/internal/printer"
	"service_print_receipt/internal/render"
	"service_print_receipt/internal/service"
)

const serviceName = "ReceiptPrintBridge"

func main() {
	cfg := config.MustLoad()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	renderer := render.NewRenderer(render.Options{
		Labels:  cfg.Receipt.Labels,
		Company: cfg.Receipt.Company,
		TaxNote: cfg.Receipt.TaxNote,
	}, logger)

	drv, err := buildDriver(cfg, logger)
	if err != nil {
		logger.Fatal("printer driver init failed", zap.Error(err))
	}
	printSvc := printer.NewService(drv, cfg.Printer.Timeout, logger)

	srv := handlers.NewServer(cfg.Server.Addr, cfg.Server.AllowedOrigin, renderer, printSvc, logger)

	interactive, err := service.Interactive()
	if err != nil {
		logger.Fatal("session detection failed", zap.Error(err))
	}
	if !interactive {
		if err := service.Run(serviceName, srv, false); err != nil {
			logger.Fatal("service run failed", zap.Error(err))
		}
		return
	}

	if err := srv.Start(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func buildDriver(cfg *config.Config, logger *zap.Logger) (driver.Driver, error) {
	enc := escpos.NewEncoder(cfg.Printer.Columns)
	switch cfg.Printer.Mode {
	case "network":
		if cfg.Printer.Host == "" {
			return nil, fmt.Errorf("network mode requires printer.host")
		}
		return driver.NewNetwork(cfg.Printer.Host, cfg.Printer.Port, enc, logger), nil
	case "file":
		if cfg.Printer.Device == "" {
			return nil, fmt.Errorf("file mode requires printer.device")
		}
		return driver.NewFile(cfg.Printer.Device, enc), nil
	case "emulation":
		logger.Info("running with emulated printer")
		return driver.NewEmulator(), nil
	default:
		return nil, fmt.Errorf("unknown printer mode %q", cfg.Printer.Mode)
	}
}
