// Package publish pushes a finished tutorial video to external destinations.
package publish

import "context"

type Request struct {
	FilePath    string
	TutorialID  string
	Title       string
	Description string
	Tags        []string
	Privacy     string
}

type Response struct {
	ID       string
	URL      string
	Platform string
}

type Publisher interface {
	Publish(ctx context.Context, req Request) (*Response, error)
	Platform() string
}
