package upload

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MAX_FILE_SIZE caps a single uploaded file at 5 MiB.
	MAX_FILE_SIZE = 5 << 20

	// MAX_FILE_COUNT caps how many files one field may carry.
	MAX_FILE_COUNT = 5
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpg":  true,
	"image/jpeg": true,
	"image/png":  true,
}

// GenerateKey produces a storage key of the form
// {fieldName}-{unixMillis}-{randomInt}{.ext}. Each call draws a fresh
// random int, so two files in the same request never collide.
func GenerateKey(fieldName, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s-%d-%d%s", fieldName, time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}

// ValidateFile checks a single file against the image policy: both the
// filename extension & the declared content type must be on the
// allowlist, and the file must be within the size cap.
func ValidateFile(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")

	if !allowedExtensions[ext] || !allowedContentTypes[contentType] {
		return fmt.Errorf("%s: only JPEG and PNG images are allowed", header.Filename)
	}

	if header.Size > MAX_FILE_SIZE {
		return fmt.Errorf("%s: file exceeds the 5MB size limit", header.Filename)
	}

	return nil
}

// ValidateFiles applies the policy to a whole field's worth of files,
// returning every violation rather than just the first.
func ValidateFiles(files []*multipart.FileHeader) []string {
	var violations []string

	if len(files) > MAX_FILE_COUNT {
		violations = append(violations, fmt.Sprintf("cannot upload more than %d files", MAX_FILE_COUNT))
	}

	for _, header := range files {
		if err := ValidateFile(header); err != nil {
			violations = append(violations, err.Error())
		}
	}

	return violations
}
