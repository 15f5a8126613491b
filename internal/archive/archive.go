package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoModel is returned when an archive holds no .glb or .gltf file.
var ErrNoModel = errors.New("archive has no .glb or .gltf file")

// IsZip reports whether path names a zip archive.
func IsZip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zip")
}

// Unzip extracts zipPath into destDir, preserving directory structure.
// destDir is created if needed. Entries that would escape destDir are skipped.
// Returns the extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Clean(filepath.Join(destDir, f.Name))
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		if !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) {
			continue // path escape
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if err := extractFile(f, dest); err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = io.Copy(out, rc)
	return err
}

// FindModel picks the model file among paths: .glb before .gltf, then the
// shallowest path, then lexical order. Textures and buffers referenced by a
// .gltf stay next to it, so the directory layout must be preserved.
func FindModel(paths []string) (string, error) {
	var found []string
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".glb", ".gltf":
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return "", ErrNoModel
	}
	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if ea, eb := isGLB(a), isGLB(b); ea != eb {
			return ea
		}
		if da, db := depth(a), depth(b); da != db {
			return da < db
		}
		return a < b
	})
	return found[0], nil
}

// ExtractModel unzips zipPath into a directory named after it under destDir
// and returns the model file inside.
func ExtractModel(zipPath, destDir string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	files, err := Unzip(zipPath, filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	return FindModel(files)
}

func isGLB(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".glb")
}

func depth(p string) int {
	return strings.Count(filepath.ToSlash(p), "/")
}
