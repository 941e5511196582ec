package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"time"

	"roboshorts/config"
	"roboshorts/types"
)

// objectStore is the narrow S3 surface the archiver needs.
type objectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Archiver copies run artifacts (video, thumbnail, metadata record) to S3.
// It only exists when a bucket is configured; runs without one skip
// archival entirely.
type Archiver struct {
	store  objectStore
	bucket string
	prefix string

	now func() time.Time
}

// New builds an archiver from the loaded configuration, or returns nil
// when no bucket is configured.
func New(ctx context.Context, cfg config.Config) (*Archiver, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	client, err := NewS3(ctx, S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	prefix := cfg.S3Prefix
	if prefix != "" {
		prefix += "/"
	}
	return &Archiver{store: client, bucket: cfg.S3Bucket, prefix: prefix, now: time.Now}, nil
}

// Store uploads the rendered artifacts for one item. Individual upload
// failures are logged and do not abort the run.
func (a *Archiver) Store(ctx context.Context, item types.NewsItem, res types.RenderResult) error {
	key := a.freshKey(ctx)

	record := map[string]any{
		"title":       res.Title,
		"description": res.Description,
		"tags":        res.Tags,
		"source":      item.Link,
		"archived_at": a.now().UTC(),
	}
	meta, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, a.bucket, path.Join(key, "metadata.json"), bytes.NewReader(meta), "application/json"); err != nil {
		return fmt.Errorf("metadata upload: %w", err)
	}

	if err := a.putFile(ctx, path.Join(key, "video.mp4"), res.VideoPath, "video/mp4"); err != nil {
		return fmt.Errorf("video upload: %w", err)
	}
	if res.ThumbnailPath != "" {
		if err := a.putFile(ctx, path.Join(key, "thumb.jpg"), res.ThumbnailPath, "image/jpeg"); err != nil {
			// The record and video made it up; a lost thumbnail is not
			// worth failing the archive over.
			log.Printf("thumbnail archive failed: %v", err)
		}
	}

	log.Printf("Archived artifacts under s3://%s/%s", a.bucket, key)
	return nil
}

// freshKey picks a timestamped key that does not clobber an earlier
// archive; items landing in the same second get a numeric suffix.
func (a *Archiver) freshKey(ctx context.Context) string {
	base := a.prefix + "shorts/" + a.now().UTC().Format("20060102_150405")

	key := base
	for n := 2; ; n++ {
		taken, err := a.store.Exists(ctx, a.bucket, path.Join(key, "metadata.json"))
		if err != nil || !taken {
			return key
		}
		key = fmt.Sprintf("%s_%d", base, n)
	}
}

func (a *Archiver) putFile(ctx context.Context, key, localPath, contentType string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return a.store.Put(ctx, a.bucket, key, file, contentType)
}
