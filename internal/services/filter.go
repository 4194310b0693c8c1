package services

import (
	"path"
	"slices"
	"strings"
)

// imageExtensions are the recognised image types, lower-case without the dot.
var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
}

// extension returns the lower-cased last "."-delimited segment of key, or ""
// when key has none.
func extension(key string) string {
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(key[i+1:])
}

// IsImageKey reports whether key carries a recognised image extension.
// Matching is case-insensitive.
func IsImageKey(key string) bool {
	return imageExtensions[extension(key)]
}

// FilterAndSort keeps image objects other than the prefix marker itself and
// orders them newest first. The input slice is not modified.
func FilterAndSort(descriptors []ObjectDescriptor, prefix string) []ObjectDescriptor {
	images := make([]ObjectDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Key == prefix || !IsImageKey(d.Key) {
			continue
		}
		images = append(images, d)
	}

	slices.SortStableFunc(images, func(a, b ObjectDescriptor) int {
		return b.LastModified.Compare(a.LastModified)
	})

	return images
}

// ContentTypeFromKey infers a MIME type from the key's extension.
func ContentTypeFromKey(key string) string {
	types := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".bmp":  "image/bmp",
	}
	if t, ok := types[strings.ToLower(path.Ext(key))]; ok {
		return t
	}
	return "application/octet-stream"
}
