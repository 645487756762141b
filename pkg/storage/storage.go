package storage

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"time"
)

// Object describes a file to be persisted.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader persists an object and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
	Backend() string
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SafeName reduces a client supplied file name to a safe ASCII form and
// prefixes it with the millisecond timestamp so names do not collide.
func SafeName(original string, now time.Time) string {
	name := unsafeNameChars.ReplaceAllString(original, "_")
	if name == "" {
		name = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + name
}
