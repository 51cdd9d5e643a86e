package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"eventgallery/internal/config"
	"eventgallery/internal/logger"
)

var errOutsideMedia = errors.New("path escapes the media directory")

// mediaPath resolves name inside dir and rejects anything that would leave it.
func mediaPath(dir, name string) (string, error) {
	if name == "" || strings.Contains(name, "\x00") {
		return "", errOutsideMedia
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(name))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", errOutsideMedia
	}
	return full, nil
}

// ImageHandler serves snapshot files from the media directory under /images/.
func ImageHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, config.ImageBasePath)
		filePath, err := mediaPath(cfg.MediaDirectory, name)
		if err != nil {
			logger.Warning("Rejected image request %q: %v", r.URL.Path, err)
			http.Error(w, "Invalid image path", http.StatusBadRequest)
			return
		}
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// VideoHandler serves recordings under /rec/ with range support. When an
// .mp4 transcode sits next to the requested file it is served instead.
func VideoHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, config.VideoBasePath)
		filePath, err := mediaPath(cfg.MediaDirectory, name)
		if err != nil {
			logger.Warning("Rejected video request %q: %v", r.URL.Path, err)
			http.Error(w, "Invalid video path", http.StatusBadRequest)
			return
		}

		mp4Path := strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ".mp4"
		if _, err := os.Stat(mp4Path); err == nil {
			filePath = mp4Path
		}

		f, err := os.Open(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
			logger.Error("Unable to open video file: %v", err)
			http.Error(w, "Unable to open video", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", videoContentType(filePath))
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}

func videoContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return "video/MP2T"
	case ".mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
