package storage

import (
	"io"
	"log"

	"gallery/config"
)

// ObjectInfo is the stored metadata of a binary object
type ObjectInfo struct {
	Size        int64
	ContentType string
	ETag        string
}

// StorageAPI stores opaque binary objects under flat string keys. Open and
// Delete of a missing key report fs.ErrNotExist (Delete treats it as done).
type StorageAPI interface {
	Save(path, contentType string, reader io.Reader) (int64, error)
	Open(path string) (io.ReadCloser, ObjectInfo, error)
	Delete(path string) error
	GetBucket() *Bucket
}

type Storage struct {
	Bucket Bucket
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

var cachedStorage []StorageAPI

func Init() {
	var bucket Bucket
	if config.S3_BUCKET != "" {
		bucket = Bucket{
			Name:        config.S3_BUCKET,
			StorageType: StorageTypeS3,
			Path:        config.S3_PREFIX,
			Region:      config.S3_REGION,
			Endpoint:    config.S3_ENDPOINT,
			AuthDetails: config.S3_AUTH,
		}
	} else {
		bucket = Bucket{
			Name:        "local",
			StorageType: StorageTypeFile,
			Path:        config.BUCKET_DIR,
		}
	}
	log.Printf("Storage bucket: %s (type %d)\n", bucket.Name, bucket.StorageType)
	if bucket.StorageType == StorageTypeS3 {
		UseStorage(NewS3Storage(&bucket))
	} else {
		UseStorage(NewDiskStorage(&bucket))
	}
}

// UseStorage replaces the configured storage. Tests point this at a temp dir
func UseStorage(s StorageAPI) {
	cachedStorage = []StorageAPI{s}
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		panic("no storage available")
	}
	return cachedStorage[0]
}
