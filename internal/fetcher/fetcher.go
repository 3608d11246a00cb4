package fetcher

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock.go

// Client retrieves the raw body of a share page.
type Client interface {
	Fetch(ctx context.Context, url string) (string, error)
}
