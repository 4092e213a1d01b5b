package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/logging"
	"github.com/vivla-tech/vivla-guides-sub001/internal/storage"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Upload and remove bucket assets",
}

var assetsDest string

var assetsUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload files to the bucket and print their URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssetsUpload,
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete <url>...",
	Short: "Remove assets by URL",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssetsDelete,
}

func init() {
	rootCmd.AddCommand(assetsCmd)

	assetsUploadCmd.Flags().StringVar(&assetsDest, "dest", "uploads",
		"destination path inside the bucket")

	assetsCmd.AddCommand(assetsUploadCmd)
	assetsCmd.AddCommand(assetsDeleteCmd)
}

func newBucketClient() *storage.BucketClient {
	cfg := loadConfig()
	return storage.NewBucketClient(cfg.Storage.Endpoint,
		storage.WithLimits(cfg.Storage.Limits()),
		storage.WithLogger(logging.NewConsole(cfg.LogLevel)),
	)
}

func runAssetsUpload(cmd *cobra.Command, args []string) error {
	files := make([]storage.File, 0, len(args))
	for _, arg := range args {
		data, err := os.ReadFile(arg)
		if err != nil {
			return fmt.Errorf("reading %s: %w", arg, err)
		}
		name := filepath.Base(arg)
		files = append(files, storage.File{
			Name:        name,
			ContentType: mime.TypeByExtension(filepath.Ext(name)),
			Data:        data,
		})
	}

	bucket := newBucketClient()
	results, err := bucket.UploadMany(cmd.Context(), files, assetsDest)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Name, r.Err)
			continue
		}
		fmt.Printf("✓ %s → %s\n", r.Name, r.URL)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(results))
	}
	return nil
}

func runAssetsDelete(cmd *cobra.Command, args []string) error {
	bucket := newBucketClient()
	bucket.DeleteMany(cmd.Context(), args)
	fmt.Printf("requested removal of %d asset(s)\n", len(args))
	return nil
}
