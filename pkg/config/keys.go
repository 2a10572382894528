package config

// Connector option keys.
const (
	// KeyCatalogPath is the storage location of the table. Required.
	KeyCatalogPath = "catalog_path"
	// KeyFormat is the data format of the table files. Required.
	KeyFormat = "format"
	// KeyTimeZone is the normalized session time zone.
	KeyTimeZone = "timezone"
	// KeySourceFilter is an optional filter expression pushed to the reader.
	KeySourceFilter = "source.filter"
)

// Storage endpoint and credential keys.
const (
	KeyS3Endpoint  = "s3.endpoint"
	KeyS3AccessKey = "s3.access-key"
	KeyS3SecretKey = "s3.secret-key"
	KeyS3Region    = "s3.region"
	KeyS3PathStyle = "s3.path-style-access"
	KeyS3Bucket    = "s3.bucket"
)

// Host session keys.
const (
	// SessionLocalTimeZone is the session time zone, "default" meaning the process zone.
	SessionLocalTimeZone = "table.local-time-zone"
	// SessionRuntimeMode is the requested runtime mode (BATCH, STREAMING or AUTOMATIC).
	SessionRuntimeMode = "execution.runtime-mode"
)

// DefaultTimeZone is the session value that selects the process local zone.
const DefaultTimeZone = "default"

// S3Keys lists the canonical storage keys copied from the session.
var S3Keys = []string{
	KeyS3Endpoint,
	KeyS3AccessKey,
	KeyS3SecretKey,
	KeyS3Region,
	KeyS3PathStyle,
	KeyS3Bucket,
}

// s3Aliases maps Hadoop-style session keys onto the canonical storage keys.
var s3Aliases = map[string]string{
	"fs.s3a.endpoint":          KeyS3Endpoint,
	"fs.s3a.access.key":        KeyS3AccessKey,
	"fs.s3a.secret.key":        KeyS3SecretKey,
	"fs.s3a.endpoint.region":   KeyS3Region,
	"fs.s3a.path.style.access": KeyS3PathStyle,
	"fs.s3a.bucket":            KeyS3Bucket,
}

// IsSecretKey reports whether the option holds a credential that must not be logged.
func IsSecretKey(key string) bool {
	switch key {
	case KeyS3AccessKey, KeyS3SecretKey, "fs.s3a.access.key", "fs.s3a.secret.key":
		return true
	}
	return false
}
