package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const gcsPlatform = "gcs"

// GCSPublisher copies finished tutorial videos into a Cloud Storage bucket
// under a fixed prefix, keyed by tutorial id.
type GCSPublisher struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSPublisher(ctx context.Context, bucket, prefix string) (*GCSPublisher, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSPublisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (p *GCSPublisher) Close() error {
	return p.client.Close()
}

func (p *GCSPublisher) Platform() string {
	return gcsPlatform
}

func (p *GCSPublisher) objectName(tutorialID, filePath string) string {
	return path.Join(p.prefix, tutorialID, path.Base(filePath))
}

func (p *GCSPublisher) Publish(ctx context.Context, req Request) (*Response, error) {
	f, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := p.objectName(req.TutorialID, req.FilePath)
	obj := p.client.Bucket(p.bucket).Object(name)

	w := obj.NewWriter(ctx)
	w.ContentType = "video/mp4"
	if req.Title != "" {
		w.Metadata = map[string]string{"title": req.Title}
	}

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	return &Response{
		ID:       name,
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", p.bucket, name),
		Platform: gcsPlatform,
	}, nil
}

// ListPublished returns the tutorial ids that already have a video object
// under the publisher's prefix.
func (p *GCSPublisher) ListPublished(ctx context.Context) ([]string, error) {
	bkt := p.client.Bucket(p.bucket)
	query := &storage.Query{Prefix: p.prefix + "/"}

	var ids []string
	seen := map[string]bool{}

	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		rest := strings.TrimPrefix(attrs.Name, p.prefix+"/")
		id, _, found := strings.Cut(rest, "/")
		if !found || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}
