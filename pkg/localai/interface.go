package localai

import "context"

// ILocalAI defines the interface for a LocalAI text-completion client.
type ILocalAI interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
