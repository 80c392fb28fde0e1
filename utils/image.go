package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// IsDataURI reports whether the string looks like a base64 data URI
// (the admin console uploads room images that way).
func IsDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// SaveBase64Image decodes a base64 image string and writes it under destDir,
// returning the saved path. Accepts either a raw base64 payload or a data URI
// like "data:image/png;base64,....".
func SaveBase64Image(base64Str string, destDir string) (string, error) {
	base64Str = strings.TrimSpace(base64Str)
	if base64Str == "" {
		return "", fmt.Errorf("empty base64 string")
	}

	ext := ""
	if strings.HasPrefix(base64Str, "data:") {
		parts := strings.SplitN(base64Str, ";base64,", 2)
		if len(parts) == 2 {
			meta := strings.TrimPrefix(parts[0], "data:")
			base64Str = parts[1]
			switch meta {
			case "image/png":
				ext = ".png"
			case "image/jpeg", "image/jpg":
				ext = ".jpg"
			case "image/gif":
				ext = ".gif"
			}
		} else if idx := strings.Index(base64Str, ","); idx != -1 {
			base64Str = base64Str[idx+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(base64Str)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(base64Str)
		if err != nil {
			return "", fmt.Errorf("base64 decode failed: %v", err)
		}
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("mkdir failed: %v", err)
	}

	randBytes := make([]byte, 6)
	if _, err := rand.Read(randBytes); err != nil {
		randBytes = []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
	}
	name := fmt.Sprintf("room_%d_%x%s", time.Now().UnixNano(), randBytes, ext)
	fullpath := filepath.Join(destDir, name)

	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file failed: %v", err)
	}

	return fullpath, nil
}
