package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/stocklane/warehouse-api/internal/export"
	"github.com/stocklane/warehouse-api/internal/reorder"
	"github.com/stocklane/warehouse-api/internal/repository/postgres"
	"github.com/urfave/cli/v2"
)

func exportReportFlags() []cli.Flag {
	return append(storageFlags(),
		newDBURLFlag(),
		&cli.StringFlag{
			Name:  "out-dir",
			Usage: "Directory for the exported CSV",
			Value: "./data/export",
		},
		&cli.BoolFlag{
			Name:  "upload",
			Usage: "Upload the exported CSV to object storage under reports/",
		},
	)
}

func runExportReport(c *cli.Context) error {
	db, err := openDB(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewProductRepository(db)
	products, err := repo.List(c.Context)
	if err != nil {
		return err
	}

	now := time.Now()
	report, err := reorder.GenerateReport(c.Context, products, now)
	if err != nil {
		return err
	}

	data, err := export.ReportCSV(report.Recommendations)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("reorder-report-%s.csv", now.Format("2006-01-02"))
	outPath := filepath.Join(c.String("out-dir"), filename)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to prepare export dir: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Printf("Wrote %s (%d products, %d needing reorder)\n",
		outPath, report.Summary.TotalProducts, report.Summary.ProductsNeedingReorder)

	if c.Bool("upload") {
		client, err := newStorageClient(c)
		if err != nil {
			return err
		}
		key := "reports/" + filename
		if err := client.UploadObject(c.Context, key, data); err != nil {
			return err
		}
		log.Printf("Uploaded %s\n", key)
	}

	return nil
}
