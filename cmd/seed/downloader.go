package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/stocklane/warehouse-api/internal/config"
	"github.com/stocklane/warehouse-api/internal/storage"
	"github.com/urfave/cli/v2"
)

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "storage-endpoint", EnvVars: []string{"STORAGE_ENDPOINT"}},
		&cli.StringFlag{Name: "storage-access-key", EnvVars: []string{"STORAGE_ACCESS_KEY"}},
		&cli.StringFlag{Name: "storage-secret-key", EnvVars: []string{"STORAGE_SECRET_KEY"}},
		&cli.StringFlag{Name: "storage-bucket", EnvVars: []string{"STORAGE_BUCKET"}},
		&cli.StringFlag{Name: "storage-region", EnvVars: []string{"STORAGE_REGION"}},
		&cli.BoolFlag{Name: "storage-use-ssl", EnvVars: []string{"STORAGE_USE_SSL"}, Value: true},
	}
}

func downloadFlags() []cli.Flag {
	return append(storageFlags(),
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Object key prefix to fetch",
			Value: "seed/",
		},
		&cli.StringFlag{
			Name:  "dest",
			Usage: "Local directory for downloaded files",
			Value: "./data/seed",
		},
	)
}

func newStorageClient(c *cli.Context) (storage.ObjectStorage, error) {
	cfg := config.StorageConfig{
		Endpoint:  c.String("storage-endpoint"),
		AccessKey: c.String("storage-access-key"),
		SecretKey: c.String("storage-secret-key"),
		Bucket:    c.String("storage-bucket"),
		Region:    c.String("storage-region"),
		UseSSL:    c.Bool("storage-use-ssl"),
	}

	return storage.NewMinioClient(cfg)
}

func runDownload(c *cli.Context) error {
	client, err := newStorageClient(c)
	if err != nil {
		return err
	}

	prefix := c.String("prefix")
	destDir := c.String("dest")

	objects, err := client.ListObjects(c.Context, prefix)
	if err != nil {
		return fmt.Errorf("failed to list objects for prefix %s: %w", prefix, err)
	}

	var downloaded int
	for _, obj := range objects {
		if !strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
			continue
		}

		localPath := filepath.Join(destDir, filepath.Base(obj.Key))
		if err := client.DownloadObject(c.Context, obj.Key, localPath); err != nil {
			return err
		}
		log.Printf("Downloaded %s -> %s\n", obj.Key, localPath)
		downloaded++
	}

	if downloaded == 0 {
		return fmt.Errorf("no CSV files found for prefix %s", prefix)
	}

	log.Printf("Downloaded %d files\n", downloaded)
	return nil
}
