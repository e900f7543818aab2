package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist reports whether the path exists
// IsExist 判断路径是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CreatePath creates the directory tree for a file or directory path
// CreatePath 创建文件或目录所需的目录
func CreatePath(path string, perm os.FileMode) error {
	dir := path
	if filepath.Ext(path) != "" {
		dir = filepath.Dir(path)
	}
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}
