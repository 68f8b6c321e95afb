package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
	StorageS3    = "s3"
)

// Video uploads
const (
	MimeVideo       = "video/"
	MimeOctetStream = "application/octet-stream"
	MaxVideoSize    = 200 << 20
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)

const ContextSessionKey = "session"
