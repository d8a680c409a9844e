package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const metaSuffix = ".meta"

type DiskStorage struct {
	Storage
	// BasePath is a directory (usually mount point of a disk) that is writable by the current process
	BasePath  string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	return &DiskStorage{
		BasePath: bucket.Path,
		Storage: Storage{
			Bucket: *bucket,
		},
		dirs: make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	s.dirs[dir] = true
	return os.MkdirAll(dir, 0777)
}

func (s *DiskStorage) getFullPath(path string) string {
	return s.BasePath + "/" + path
}

func (s *DiskStorage) Save(path, contentType string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	if err != nil {
		return result, err
	}
	// Content type lives in a sidecar file next to the object
	return result, os.WriteFile(fileName+metaSuffix, []byte(contentType), 0666)
}

func (s *DiskStorage) Open(path string) (io.ReadCloser, ObjectInfo, error) {
	fileName := s.getFullPath(path)
	file, err := os.Open(fileName)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, ObjectInfo{}, err
	}
	info := ObjectInfo{
		Size: fi.Size(),
		ETag: fmt.Sprintf("%x-%x", fi.ModTime().UnixNano(), fi.Size()),
	}
	if meta, err := os.ReadFile(fileName + metaSuffix); err == nil {
		info.ContentType = strings.TrimSpace(string(meta))
	}
	return file, info, nil
}

func (s *DiskStorage) Delete(path string) error {
	fileName := s.getFullPath(path)
	_ = os.Remove(fileName + metaSuffix)
	err := os.Remove(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
