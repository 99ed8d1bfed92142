package cmd

import (
	"net/http"
	"time"

	"github.com/Fontikcz12/quantizer/api"
	"github.com/Fontikcz12/quantizer/constants"
	"github.com/Fontikcz12/quantizer/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default $PORT or 8080)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the quantizer API",
	Long:  `Serves the analyze, quantize, export and download endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := NewServer()
		if err != nil {
			return err
		}
		port := servePort
		if port == "" {
			port = constants.GetPort()
		}
		logrus.WithField("port", port).Info("quantizer listening")
		return http.ListenAndServe(":"+port, server.Router())
	},
}

// NewServer wires the storage ports picked by STORAGE_BACKEND into an API
// server.
func NewServer() (*api.Server, error) {
	uploads, processed, err := newStores(constants.GetStorageBackend())
	if err != nil {
		return nil, err
	}

	server := &api.Server{
		Uploads:        uploads,
		Processed:      processed,
		MaxUploadBytes: constants.GetMaxUploadBytes(),
		RateLimit:      constants.GetRateLimit(),
	}
	if pruner, ok := processed.(storage.Pruner); ok {
		server.Janitor = storage.NewJanitor(pruner, constants.GetProcessedTTL(), time.Minute)
	}
	return server, nil
}

func newStores(backend string) (storage.Store, storage.Store, error) {
	switch backend {
	case "memory":
		return storage.NewMemory(), storage.NewMemory(), nil
	case "s3":
		// uploads are parsed right away, no point sending them to a bucket
		uploads, err := storage.NewDir(constants.GetUploadDir())
		if err != nil {
			return nil, nil, err
		}
		processed, err := storage.NewS3(constants.GetS3Bucket(), "processed/", constants.GetS3Region(), constants.GetS3Endpoint())
		if err != nil {
			return nil, nil, err
		}
		return uploads, processed, nil
	case "dir", "":
		uploads, err := storage.NewDir(constants.GetUploadDir())
		if err != nil {
			return nil, nil, err
		}
		processed, err := storage.NewDir(constants.GetProcessedDir())
		if err != nil {
			return nil, nil, err
		}
		return uploads, processed, nil
	}
	return nil, nil, errors.Errorf("unknown storage backend %q", backend)
}
