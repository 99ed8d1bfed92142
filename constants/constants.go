package constants

import (
	"os"
	"strconv"
	"time"

	"github.com/Fontikcz12/quantizer/model"
	"github.com/sirupsen/logrus"
)

const (
	DefaultGridSize     = 15
	DefaultMode         = "nearest"
	DefaultStrength     = 100 // percent
	DefaultMinGap       = 3
	DefaultTicksPerBeat = 480
	DefaultTempo        = 500000 // 120 BPM
)

var DefaultTimeSignature = model.TimeSignature{Numerator: 4, Denominator: 4}

const (
	defaultMaxUploadBytes = 16 * 1024 * 1024
	defaultProcessedTTL   = time.Hour
)

func DefaultQuantizeRequest() model.QuantizeRequest {
	return model.QuantizeRequest{
		GridSize: DefaultGridSize,
		Mode:     DefaultMode,
		Strength: DefaultStrength,
		MinGap:   DefaultMinGap,
	}
}

func DefaultExportRequest() model.ExportRequest {
	return model.ExportRequest{
		Filename:      "input.mid",
		TicksPerBeat:  DefaultTicksPerBeat,
		Tempo:         DefaultTempo,
		TimeSignature: DefaultTimeSignature,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetUploadDir() string {
	return getEnv("UPLOAD_PATH", "./uploads")
}

func GetProcessedDir() string {
	return getEnv("PROCESSED_PATH", "./processed")
}

// GetStorageBackend is one of "dir", "s3" or "memory".
func GetStorageBackend() string {
	return getEnv("STORAGE_BACKEND", "dir")
}

func GetS3Bucket() string {
	return os.Getenv("S3_BUCKET")
}

func GetS3Region() string {
	return getEnv("S3_REGION", "us-east-1")
}

// GetS3Endpoint is empty unless talking to something S3 compatible.
func GetS3Endpoint() string {
	return os.Getenv("S3_ENDPOINT")
}

func GetProcessedTTL() time.Duration {
	d, err := time.ParseDuration(os.Getenv("PROCESSED_TTL"))
	if err != nil || d <= 0 {
		return defaultProcessedTTL
	}
	return d
}

func GetMaxUploadBytes() int64 {
	n, err := strconv.ParseInt(os.Getenv("MAX_UPLOAD_BYTES"), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxUploadBytes
	}
	return n
}

// GetRateLimit is requests per second per client, 0 disables limiting.
func GetRateLimit() float64 {
	f, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT"), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func GetLogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
