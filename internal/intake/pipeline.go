// SPDX-License-Identifier: Apache-2.0

package intake

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/qudoro/cardmint/internal/dedupe"
	"github.com/qudoro/cardmint/internal/logger"
	"github.com/qudoro/cardmint/internal/textnorm"
)

// ErrUnsupportedFormat is returned when no registered decoder accepts a source.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Options tunes batch processing. Exact and fuzzy intra-batch suppression are
// independent switches.
type Options struct {
	LowConfidenceThreshold  float64
	SuppressExactDuplicates bool
	FuzzyBatchDuplicates    bool
	// Workers > 1 parses segments concurrently; output order is unchanged.
	Workers int
}

// DefaultOptions returns exact-signature suppression only, processed sequentially.
func DefaultOptions() Options {
	return Options{
		LowConfidenceThreshold:  DefaultLowConfidence,
		SuppressExactDuplicates: true,
		Workers:                 1,
	}
}

type Pipeline struct {
	decoders []Decoder
	opts     Options
	detector *dedupe.Detector
	log      *logger.Logger
	newID    func() string
}

// NewPipeline creates a Pipeline with the provided decoders and default options.
func NewPipeline(decoders ...Decoder) *Pipeline {
	return &Pipeline{
		decoders: decoders,
		opts:     DefaultOptions(),
		detector: dedupe.NewDetector(),
		log:      logger.Nop(),
		newID:    uuid.NewString,
	}
}

func (p *Pipeline) WithOptions(opts Options) *Pipeline {
	if opts.LowConfidenceThreshold <= 0 {
		opts.LowConfidenceThreshold = DefaultLowConfidence
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	p.opts = opts
	return p
}

func (p *Pipeline) WithDetector(d *dedupe.Detector) *Pipeline {
	if d != nil {
		p.detector = d
	}
	return p
}

func (p *Pipeline) WithLogger(l *logger.Logger) *Pipeline {
	if l != nil {
		p.log = l
	}
	return p
}

// WithIDs replaces the batch item identifier generator.
func (p *Pipeline) WithIDs(newID func() string) *Pipeline {
	if newID != nil {
		p.newID = newID
	}
	return p
}

// Batch is the output of one pipeline run.
type Batch struct {
	Items         []BatchItem `json:"items" yaml:"items"`
	DecoderUsed   string      `json:"decoder_used,omitempty" yaml:"decoder_used,omitempty"`
	Segments      int         `json:"segments" yaml:"segments"`
	Suppressed    int         `json:"suppressed" yaml:"suppressed"`
	LowConfidence int         `json:"low_confidence" yaml:"low_confidence"`
}

// Run decodes a source with the first decoder that can handle it and
// processes the resulting segments.
func (p *Pipeline) Run(ctx context.Context, source Source) (Batch, error) {
	decoder, err := p.selectDecoder(source)
	if err != nil {
		return Batch{}, err
	}
	segments, err := decoder.Decode(ctx, source)
	if err != nil {
		return Batch{}, fmt.Errorf("decoder %q failed: %w", decoder.Name(), err)
	}
	batch, err := p.Process(ctx, segments)
	if err != nil {
		return Batch{}, err
	}
	batch.DecoderUsed = decoder.Name()
	p.log.Debug("batch parsed",
		"source", source.ID,
		"decoder", batch.DecoderUsed,
		"segments", batch.Segments,
		"items", len(batch.Items),
		"low_confidence", batch.LowConfidence,
		"suppressed", batch.Suppressed,
	)
	return batch, nil
}

// ParseBatch splits raw text and processes the segments.
func (p *Pipeline) ParseBatch(ctx context.Context, raw string) (Batch, error) {
	return p.Process(ctx, SplitBlocks(raw))
}

// Process parses and scores already-split segments. Items with nothing parsed
// are dropped, then intra-batch duplicates are suppressed in input order.
func (p *Pipeline) Process(ctx context.Context, segments []string) (Batch, error) {
	scored, err := p.parseAll(ctx, segments)
	if err != nil {
		return Batch{}, err
	}

	batch := Batch{Items: []BatchItem{}, Segments: len(segments)}
	seen := make(map[string]struct{})
	var keptStems []string
	for _, item := range scored {
		if item.Parsed.IsEmpty() {
			continue
		}
		if p.opts.SuppressExactDuplicates && item.Signature != "" {
			if _, dup := seen[item.Signature]; dup {
				batch.Suppressed++
				continue
			}
			seen[item.Signature] = struct{}{}
		}
		if p.opts.FuzzyBatchDuplicates {
			if p.detector.Match(item.Parsed.Stem, keptStems) >= 0 {
				batch.Suppressed++
				continue
			}
			keptStems = append(keptStems, item.Parsed.Stem)
		}
		item.ID = p.newID()
		if item.IsLowConfidence {
			batch.LowConfidence++
		}
		batch.Items = append(batch.Items, item)
	}
	return batch, nil
}

func (p *Pipeline) parseAll(ctx context.Context, segments []string) ([]BatchItem, error) {
	items := make([]BatchItem, len(segments))
	if p.opts.Workers <= 1 || len(segments) < 2 {
		for i, seg := range segments {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			items[i] = p.score(seg)
		}
		return items, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, seg := range segments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = p.score(seg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Pipeline) score(segment string) BatchItem {
	parsed := ParseBlock(segment)
	confidence := Score(parsed)
	signatureSource := parsed.Stem
	if signatureSource == "" {
		signatureSource = segment
	}
	return BatchItem{
		Parsed:          parsed,
		Confidence:      confidence,
		IsLowConfidence: confidence < p.opts.LowConfidenceThreshold,
		Signature:       textnorm.ForComparison(signatureSource),
		Segment:         textnorm.Normalize(segment),
	}
}

// selectDecoder returns the first registered decoder that can handle the source.
func (p *Pipeline) selectDecoder(source Source) (Decoder, error) {
	for _, d := range p.decoders {
		if d.CanHandle(source) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: no decoder found for source %q (format hint: %q)", ErrUnsupportedFormat, source.ID, source.Format)
}

// RegisteredDecoders returns the names of all registered decoders.
func (p *Pipeline) RegisteredDecoders() []string {
	names := make([]string, len(p.decoders))
	for i, d := range p.decoders {
		names[i] = d.Name()
	}
	return names
}

// ParseBatch runs raw text through the pipeline with default options. Process
// only fails when its context is done, so the background context never errors.
func ParseBatch(raw string) []BatchItem {
	batch, _ := NewPipeline().ParseBatch(context.Background(), raw)
	return batch.Items
}
