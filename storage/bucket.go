package storage

import (
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	Name        string
	StorageType StorageType
	Path        string // Directory on a drive or a key prefix in a S3 bucket
	Region      string
	Endpoint    string // For S3-compatible stores
	AuthDetails string // In case of S3 bucket - "key:secret"
}

func (b *Bucket) CreateSVC() *s3.S3 {
	config := aws.Config{
		Region: aws.String(b.Region),
	}
	if parts := strings.SplitN(b.AuthDetails, ":", 2); len(parts) == 2 {
		config.Credentials = credentials.NewStaticCredentials(parts[0], parts[1], "")
	}
	if b.Endpoint != "" {
		config.Endpoint = aws.String(b.Endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}
	return s3.New(session.Must(session.NewSession(&config)))
}

func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}
