package template

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/xy-planning-network/burrow"
)

// AssetsDir is where AssetURI looks for static files.
const AssetsDir = "assets"

// AssetURI encloses the environment and filesystem so when called executing a template,
// emits a URI under basePath for static files in AssetsDir.
//
// Outside of development, fingerprinted copies are preferred,
// i.e., for app.js, assets/app-3f9a1c.js is emitted if it is in filesys.
func AssetURI(basePath string, env burrow.Environment, filesys fs.FS) (string, func(string) string) {
	basePath = "/" + strings.Trim(basePath, "/")
	return "assetURI", func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		plain := path.Join(basePath, AssetsDir, assetPath)
		if filesys == nil || env.IsDevelopment() || env.IsTesting() {
			return plain
		}

		ext := path.Ext(assetPath)
		glob := fmt.Sprintf("%s/%s-*%s", AssetsDir, strings.TrimSuffix(assetPath, ext), ext)
		matches, err := fs.Glob(filesys, glob)
		if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
			return plain
		}

		return path.Join(basePath, matches[0])
	}
}
