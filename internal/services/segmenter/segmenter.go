package segmenter

import (
	"regexp"
	"strings"

	"github.com/prophetlog/prediction-api/internal/models"
)

// Block is a semantically grouped span of transcript chunks, the unit offered
// to the language model. Blocks are transient and never persisted.
type Block struct {
	Text      string
	StartTime float64
	ChunkIDs  []uint
}

// Options bound the size of a semantic block
type Options struct {
	MinWords  int // minimum words before a block may close on a soft condition
	MaxWords  int // word count that forces a close
	MaxChunks int // chunk count that forces a close
}

// DefaultOptions returns the tuned production thresholds
func DefaultOptions() Options {
	return Options{MinWords: 30, MaxWords: 120, MaxChunks: 5}
}

var sentenceEndRegex = regexp.MustCompile(`[.!?]$`)

// Segment converts a video's ordered transcript chunks into semantic blocks.
// A running block closes after appending a chunk when that chunk is the last
// one, or when the block has reached MinWords and either ends on sentence
// punctuation, has reached MaxWords, or has reached MaxChunks. Blank chunks
// neither open nor extend a block.
func Segment(chunks []models.TranscriptChunk, opts Options) []Block {
	if opts.MinWords <= 0 {
		opts = DefaultOptions()
	}

	var blocks []Block
	var parts []string
	var ids []uint
	var start float64
	words := 0

	for i, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if text == "" {
			continue
		}

		if len(parts) == 0 {
			start = chunk.StartTime
		}
		parts = append(parts, text)
		ids = append(ids, chunk.ID)
		words += len(strings.Fields(text))

		lastChunk := i == len(chunks)-1
		closeable := words >= opts.MinWords &&
			(sentenceEndRegex.MatchString(text) || words >= opts.MaxWords || len(ids) >= opts.MaxChunks)

		if lastChunk || closeable {
			blocks = append(blocks, newBlock(parts, start, ids))
			parts, ids, words = nil, nil, 0
		}
	}

	// Trailing blank chunks can leave an open block behind
	if len(parts) > 0 {
		blocks = append(blocks, newBlock(parts, start, ids))
	}

	return blocks
}

// SegmentFixed partitions chunks into consecutive groups of perBlock chunks;
// the last group may be smaller. Groups whose joined text is empty are dropped.
func SegmentFixed(chunks []models.TranscriptChunk, perBlock int) []Block {
	if perBlock <= 0 {
		perBlock = 5
	}

	var blocks []Block
	for i := 0; i < len(chunks); i += perBlock {
		end := i + perBlock
		if end > len(chunks) {
			end = len(chunks)
		}
		if block, ok := windowBlock(chunks[i:end]); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// SegmentOverlapping produces sliding-window blocks of size chunks advancing
// by size-overlap each step, so adjacent blocks share overlap chunks of
// context. The window stops once it would start beyond the input.
func SegmentOverlapping(chunks []models.TranscriptChunk, size, overlap int) []Block {
	if size <= 0 {
		size = 6
	}
	step := size - overlap
	if step <= 0 {
		step = 1
	}

	var blocks []Block
	for start := 0; start < len(chunks); start += step {
		end := start + size
		if end > len(chunks) {
			end = len(chunks)
		}
		if block, ok := windowBlock(chunks[start:end]); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// windowBlock joins a chunk window into one block, reporting false when the
// window holds no text
func windowBlock(window []models.TranscriptChunk) (Block, bool) {
	var parts []string
	ids := make([]uint, 0, len(window))
	for _, chunk := range window {
		ids = append(ids, chunk.ID)
		if text := strings.TrimSpace(chunk.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return Block{}, false
	}
	return Block{
		Text:      strings.Join(parts, " "),
		StartTime: window[0].StartTime,
		ChunkIDs:  ids,
	}, true
}

func newBlock(parts []string, start float64, ids []uint) Block {
	return Block{
		Text:      strings.Join(parts, " "),
		StartTime: start,
		ChunkIDs:  ids,
	}
}
