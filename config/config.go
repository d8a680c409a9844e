package config

import (
	"os"
	"strings"
)

var (
	BIND_ADDRESS = "0.0.0.0:8080"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	DEBUG_MODE   = true

	// Secrets are read here but passed explicitly into the auth constructors
	ADMIN_SECRET = "" // Admin access is disabled while this is empty
	TOKEN_SECRET = ""

	// Document store. MySQL is used if MYSQL_DSN is set, then SQLite if
	// SQLITE_FILE is set, otherwise a local Badger database at KV_DIR
	MYSQL_DSN   = ""
	SQLITE_FILE = ""
	KV_DIR      = "data/kv"

	// Object store. S3 is used if S3_BUCKET is set, otherwise files under BUCKET_DIR
	BUCKET_DIR  = "data/objects"
	S3_BUCKET   = ""
	S3_REGION   = "us-east-1"
	S3_ENDPOINT = "" // For S3-compatible stores (R2, MinIO, etc)
	S3_AUTH     = "" // "key:secret"
	S3_PREFIX   = ""
)

func init() {
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("ADMIN_SECRET", &ADMIN_SECRET)
	readEnvString("TOKEN_SECRET", &TOKEN_SECRET)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("KV_DIR", &KV_DIR)
	readEnvString("BUCKET_DIR", &BUCKET_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_AUTH", &S3_AUTH)
	readEnvString("S3_PREFIX", &S3_PREFIX)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
