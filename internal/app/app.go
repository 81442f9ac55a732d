package app

import (
	"fmt"
	"log"
	"os"

	"github.com/planware/keyscan/internal/config"
	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/core/scan_engine"
	"github.com/planware/keyscan/internal/services"
)

type App struct {
	Extractor core.DocumentExtractor
	ScanSvc   *services.ScanService
	Server    *Server
}

func NewApp(cfg *config.Config) (*App, error) {
	// Spool root must exist and be writable before any scan runs.
	if err := os.MkdirAll(cfg.SpoolDir, 0o755); err != nil {
		return nil, fmt.Errorf("spool dir %s: %w", cfg.SpoolDir, err)
	}

	useOCR := false
	extractor := scan_engine.NewDocconvExtractor(useOCR)
	log.Println("Document extractor initialized and ready.")

	scanSvc := services.NewScanService(extractor, cfg)
	server := NewServer(cfg, scanSvc)

	return &App{Extractor: extractor, ScanSvc: scanSvc, Server: server}, nil
}
