package download

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const userAgent = "camera-viewer/1.0"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 60 * time.Second

// IsRemote reports whether resource names an http(s) URL rather than a local path.
func IsRemote(resource string) bool {
	lower := strings.ToLower(resource)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads rawURL into destDir and returns the saved path. The filename comes
// from Content-Disposition or the URL path; the extension from the URL or
// Content-Type. destDir is created if needed. A partial file is removed on error.
func Fetch(ctx context.Context, client *http.Client, rawURL string, destDir string) (savedPath string, err error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	ext := extensionFromURL(rawURL)
	if ext == "" {
		ext = extensionFromContentType(resp.Header.Get("Content-Type"))
	}
	if ext == "" {
		ext = ".glb"
	}
	name := sanitizeFilename(filename(rawURL, resp.Header.Get("Content-Disposition")))
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name = name + ext
	}
	savedPath = filepath.Join(destDir, name)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	out, err := os.Create(savedPath)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(savedPath)
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// contentTypeExts maps model media types to file extensions.
var contentTypeExts = map[string]string{
	"model/gltf-binary":            ".glb",
	"model/gltf+json":              ".gltf",
	"model/obj":                    ".obj",
	"application/zip":              ".zip",
	"application/x-zip-compressed": ".zip",
}

func extensionFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return contentTypeExts[mt]
}

// urlPath returns the path component of rawURL, without query or fragment.
func urlPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

func extensionFromURL(rawURL string) string {
	ext := strings.ToLower(path.Ext(urlPath(rawURL)))
	for _, known := range contentTypeExts {
		if ext == known {
			return ext
		}
	}
	return ""
}

// filename prefers the Content-Disposition filename (mime decodes the RFC 2231
// filename* form into it) and falls back to the last URL path segment. It
// returns "" when neither names a file.
func filename(rawURL, disposition string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return params["filename"]
	}
	base := path.Base(urlPath(rawURL))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// maxNameLen bounds saved file names.
const maxNameLen = 96

func sanitizeFilename(name string) string {
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), ".")
	if name == "" {
		return "model"
	}
	return name[:min(len(name), maxNameLen)]
}
