//go:build onnx

package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// bertTokenizer is a minimal WordPiece tokenizer sufficient to feed a
// sentence-embedding ONNX model (e.g. all-MiniLM-L6-v2).
type bertTokenizer struct {
	vocab    map[string]int
	clsToken int
	sepToken int
	unkToken int
}

// ONNXConfig configures the local ONNX embedding backend.
type ONNXConfig struct {
	ModelPath      string
	TokenizerPath  string
	SharedLibPath  string
	Dimensions     int
}

// onnxEmbedder runs a local sentence-transformer model through ONNX
// Runtime: mean-pooled, attention-masked, L2-normalized.
type onnxEmbedder struct {
	session   *ort.DynamicAdvancedSession
	tokenizer *bertTokenizer
	dim       int
}

// NewONNXEmbedder loads a local model and tokenizer behind the onnx build
// tag. Unavailable in the default (hash-only) build.
func NewONNXEmbedder(cfg ONNXConfig) (Embedder, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("embedding: ModelPath is required")
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 384
	}
	if cfg.SharedLibPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("embedding: initialize onnx runtime: %w", err)
	}

	tok, err := loadBERTTokenizer(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("embedding: load tokenizer: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("embedding: create onnx session: %w", err)
	}

	return &onnxEmbedder{session: session, tokenizer: tok, dim: cfg.Dimensions}, nil
}

func (e *onnxEmbedder) Dim() int     { return e.dim }
func (e *onnxEmbedder) Name() string { return "onnx" }

func (e *onnxEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const maxLen = 128
	tokens := e.tokenizer.Tokenize(text)

	inputIDs := make([]int64, maxLen)
	attentionMask := make([]int64, maxLen)
	tokenTypeIDs := make([]int64, maxLen)

	inputIDs[0] = int64(e.tokenizer.clsToken)
	attentionMask[0] = 1

	n := len(tokens)
	if n > maxLen-2 {
		n = maxLen - 2
	}
	for i := 0; i < n; i++ {
		inputIDs[i+1] = tokens[i]
		attentionMask[i+1] = 1
	}
	end := n + 1
	inputIDs[end] = int64(e.tokenizer.sepToken)
	attentionMask[end] = 1

	idsTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxLen)), inputIDs)
	if err != nil {
		return nil, fmt.Errorf("embedding: input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxLen)), attentionMask)
	if err != nil {
		return nil, fmt.Errorf("embedding: attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(ort.NewShape(1, int64(maxLen)), tokenTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("embedding: token_type_ids tensor: %w", err)
	}
	defer typeTensor.Destroy()

	inputs := []ort.Value{idsTensor, maskTensor, typeTensor}
	outputs := []ort.Value{nil}
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("embedding: onnx inference: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				o.Destroy()
			}
		}
	}()

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok || out == nil {
		return nil, fmt.Errorf("embedding: unexpected onnx output tensor")
	}
	data := out.GetData()
	shape := out.GetShape()

	var vec []float32
	switch len(shape) {
	case 2:
		if len(data) < e.dim {
			return nil, fmt.Errorf("embedding: output dim mismatch: got %d want %d", len(data), e.dim)
		}
		vec = append([]float32(nil), data[:e.dim]...)
	case 3:
		seqLen := int(shape[1])
		hidden := int(shape[2])
		vec = make([]float32, hidden)
		var attended float32
		for i := 0; i < seqLen; i++ {
			if attentionMask[i] == 0 {
				continue
			}
			attended++
			off := i * hidden
			for j := 0; j < hidden; j++ {
				vec[j] += data[off+j]
			}
		}
		if attended > 0 {
			for j := range vec {
				vec[j] /= attended
			}
		}
	default:
		return nil, fmt.Errorf("embedding: unexpected onnx output shape %v", shape)
	}

	return normalizeF32(vec), nil
}

// Close releases ONNX runtime resources.
func (e *onnxEmbedder) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}

func init() {
	onnxFactory = func(dims int) (Embedder, error) {
		return NewONNXEmbedder(ONNXConfig{
			ModelPath:     os.Getenv("ORI_ONNX_MODEL_PATH"),
			TokenizerPath: os.Getenv("ORI_ONNX_TOKENIZER_PATH"),
			SharedLibPath: os.Getenv("ORI_ONNX_LIB_PATH"),
			Dimensions:    dims,
		})
	}
}

func normalizeF32(vec []float32) []float32 {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func loadBERTTokenizer(path string) (*bertTokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Model struct {
			Vocab map[string]int `json:"vocab"`
		} `json:"model"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	return &bertTokenizer{vocab: parsed.Model.Vocab, clsToken: 101, sepToken: 102, unkToken: 100}, nil
}

func (t *bertTokenizer) Tokenize(text string) []int64 {
	text = strings.ToLower(text)
	words := strings.Fields(text)
	var tokens []int64
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'")
		if id, ok := t.vocab[w]; ok {
			tokens = append(tokens, int64(id))
			continue
		}
		for _, sub := range t.wordPiece(w) {
			if id, ok := t.vocab[sub]; ok {
				tokens = append(tokens, int64(id))
			} else {
				tokens = append(tokens, int64(t.unkToken))
			}
		}
	}
	return tokens
}

func (t *bertTokenizer) wordPiece(word string) []string {
	if len(word) == 0 {
		return nil
	}
	var subs []string
	start := 0
	for start < len(word) {
		end := len(word)
		found := false
		for end > start {
			cand := word[start:end]
			if start > 0 {
				cand = "##" + cand
			}
			if _, ok := t.vocab[cand]; ok {
				subs = append(subs, cand)
				start = end
				found = true
				break
			}
			end--
		}
		if !found {
			subs = append(subs, "[UNK]")
			start++
		}
	}
	return subs
}
