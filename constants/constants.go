package constants

import (
	"os"
	"strconv"
)

const (
	DefaultOutputName = "transformed.mid"
	TicksPerQuarter   = 480
	DefaultBPM        = 120.0
	MaxPitch          = 127
)

func GetAddr() string {
	addr := os.Getenv("SCALECONV_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetLogLevel() string {
	level := os.Getenv("SCALECONV_LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}

// GetMaxUploadBytes caps request bodies on the HTTP server, default 16 MiB.
func GetMaxUploadBytes() int64 {
	n, err := strconv.ParseInt(os.Getenv("SCALECONV_MAX_UPLOAD_BYTES"), 10, 64)
	if err != nil || n <= 0 {
		return 16 * 1024 * 1024
	}
	return n
}
