package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/otabekj/dukon/internal/config"
	"github.com/otabekj/dukon/internal/export"
	dukonHttp "github.com/otabekj/dukon/internal/http"
	adminHandler "github.com/otabekj/dukon/internal/http/admin"
	catalogHandler "github.com/otabekj/dukon/internal/http/catalog"
	clientHandler "github.com/otabekj/dukon/internal/http/client"
	exportHandler "github.com/otabekj/dukon/internal/http/exporthttp"
	importHandler "github.com/otabekj/dukon/internal/http/importcsv"
	reportsHandler "github.com/otabekj/dukon/internal/http/reports"
	staffHandler "github.com/otabekj/dukon/internal/http/staff"
	supplierHandler "github.com/otabekj/dukon/internal/http/supplier"
	tradeHandler "github.com/otabekj/dukon/internal/http/trade"
	"github.com/otabekj/dukon/internal/importer"
	"github.com/otabekj/dukon/internal/ledger"
	ledgerStore "github.com/otabekj/dukon/internal/ledger/store"
	"github.com/otabekj/dukon/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := ledgerStore.New(cfg.DB.Path)
	if err := store.Init(context.Background()); err != nil {
		slog.Error("failed to open data file", "path", cfg.DB.Path, "error", err)
		os.Exit(1)
	}

	var (
		ledgerService = ledger.NewService(store)
		reportService = report.NewService(ledgerService)
		exportService = export.NewService(ledgerService)
		importService = importer.NewService()
	)

	var (
		clientH   = clientHandler.NewHandler(ledgerService, reportService)
		catalogH  = catalogHandler.NewHandler(ledgerService)
		tradeH    = tradeHandler.NewHandler(ledgerService)
		supplierH = supplierHandler.NewHandler(ledgerService)
		staffH    = staffHandler.NewHandler(ledgerService)
		reportsH  = reportsHandler.NewHandler(reportService)
		exportH   = exportHandler.NewHandler(exportService)
		importH   = importHandler.NewHandler(importService, ledgerService)
		adminH    = adminHandler.NewHandler(ledgerService)
	)

	router := dukonHttp.New(clientH, catalogH, tradeH, supplierH, staffH, reportsH, exportH, importH, adminH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr, "db", cfg.DB.Path)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
