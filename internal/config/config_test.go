package config

import "testing"

func TestResolveBucketName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain name", "claimdesk-files", "claimdesk-files"},
		{"custom plain name", "photos", "photos"},
		{"placeholder", "s3", DefaultBucket},
		{"placeholder uppercase", "S3", DefaultBucket},
		{"url with real bucket", "https://minio.example.com/storage/v1/photos", "photos"},
		{"url ending in placeholder", "https://minio.example.com/storage/v1/s3", DefaultBucket},
		{"url with trailing slash", "https://minio.example.com/uploads/", "uploads"},
		{"url with empty path", "https://minio.example.com", "https://minio.example.com"},
		{"unparseable url kept as-is", "http://%zz/s3", "http://%zz/s3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBucketName(tt.raw); got != tt.want {
				t.Errorf("ResolveBucketName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.MinioBucket == "" {
		t.Error("MinioBucket must never resolve to an empty string")
	}
	if cfg.MaxFileSize <= 0 {
		t.Errorf("MaxFileSize = %d, want positive", cfg.MaxFileSize)
	}
	if cfg.RedisTTL <= 0 {
		t.Errorf("RedisTTL = %v, want positive", cfg.RedisTTL)
	}
}
