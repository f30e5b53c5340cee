package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBucket is used when the configured bucket name turns out to be an
// infrastructure placeholder rather than a real bucket.
const DefaultBucket = "claimdesk-files"

// bucketPlaceholder is the segment a misconfigured deployment typically
// leaves in MINIO_BUCKET when the storage base path is pasted there.
const bucketPlaceholder = "s3"

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	ServerPort     string
	Env            string
	RedisURL       string
	RedisTTL       time.Duration
	MinioURL       string
	MinioPublicURL string
	MinioUser      string
	MinioPassword  string
	MinioBucket    string
	MaxFileSize    int64
}

func LoadConfig() Config {
	ttlStr := getEnv("REDIS_TTL", "10m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 10 * time.Minute
	}

	maxFileSize := getEnvAsInt64("MAX_FILE_SIZE", 25*1024*1024) // 25MB default

	return Config{
		DBHost:         getEnv("DB_HOST", "postgres"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPass:         getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "db_claimdesk"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Env:            getEnv("ENV", "dev"),
		RedisURL:       getEnv("REDIS_URL", "redis:6379"),
		RedisTTL:       ttl,
		MinioURL:       getEnv("MINIO_URL", "localhost:9000"),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		MinioUser:      getEnv("MINIO_USER", "minioadmin"),
		MinioPassword:  getEnv("MINIO_PASSWORD", "minioadmin"),
		MinioBucket:    ResolveBucketName(getEnv("MINIO_BUCKET", DefaultBucket)),
		MaxFileSize:    maxFileSize,
	}
}

// ResolveBucketName normalizes the configured bucket value. Deployments
// sometimes paste a full storage URL into MINIO_BUCKET, in which case the
// last path segment is taken as the bucket name. If that segment is the
// well-known placeholder, the application default is substituted. A value
// that looks like a URL but does not parse is kept as-is.
func ResolveBucketName(raw string) string {
	name := raw
	if strings.Contains(raw, "://") {
		if u, err := url.Parse(raw); err == nil {
			segments := strings.Split(strings.Trim(u.Path, "/"), "/")
			if last := segments[len(segments)-1]; last != "" {
				name = last
			}
		}
	}
	if strings.EqualFold(name, bucketPlaceholder) {
		return DefaultBucket
	}
	return name
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
