package embedding

import "fmt"

// onnxFactory is populated by an init() in the onnx-tagged build
// (embedder_onnx.go); nil in the default, dependency-free build.
var onnxFactory func(dims int) (Embedder, error)

// NewEmbedder selects the embedder backend named by engine.embedding_model
// (§6). "" and "hash" both select the dependency-free hash embedder, which
// is always available. "onnx" selects the local ONNX model backend, which
// only exists in a binary built with -tags onnx.
func NewEmbedder(model string, dims int) (Embedder, error) {
	switch model {
	case "", "hash":
		return NewHashEmbedder(dims), nil
	case "onnx":
		if onnxFactory == nil {
			return nil, fmt.Errorf("embedding: model %q requires a binary built with -tags onnx", model)
		}
		return onnxFactory(dims)
	default:
		return nil, fmt.Errorf("embedding: unknown embedding model %q", model)
	}
}
