package deepseek

import "context"

// IDeepSeek defines the interface for DeepSeek LLM client
type IDeepSeek interface {
	Chat(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
