package storage

import (
	"fmt"
	"strings"

	"basamu_backend/internals/configs"
)

// FromConfig picks the Store named by STORAGE_DRIVER.
func FromConfig(cfg configs.Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageDriver)) {
	case "", "supabase":
		return NewSupabaseStore(cfg.SupabaseProjectURL, cfg.SupabaseServiceKey)
	case "oss":
		return NewOSSStore(OSSConfig{
			Endpoint:   cfg.OSSEndpoint,
			AccessKey:  cfg.OSSAccessKey,
			SecretKey:  cfg.OSSSecretKey,
			Bucket:     cfg.OSSBucket,
			PublicBase: cfg.OSSPublicBase,
		})
	case "memory":
		return NewMemoryStore("http://localhost:" + cfg.Port + "/storage/v1"), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
