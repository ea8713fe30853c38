package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"metaprep/internal/dataset"
	"metaprep/internal/domain"
	"metaprep/internal/encode"
	"metaprep/internal/pool"
	"metaprep/internal/split"
	"metaprep/internal/stats"
	"metaprep/internal/vocab"
)

// Pool names used for the meta splits.
const (
	TrainPool = "train"
	ValPool   = "val"
	TestPool  = "test"
)

// Options configure a pipeline run.
type Options struct {
	Dataset dataset.Name
	// MaxLen overrides the dataset's fixed length when positive and infers
	// it per pool when negative. Zero uses the dataset table.
	MaxLen           int
	FilterDegenerate bool
	// StrictPartition rejects class splits that share class ids.
	StrictPartition bool
	// MinFreq prunes the corpus vocabulary.
	MinFreq int
	// EncodeWithCorpus encodes against the corpus vocabulary instead of the
	// supplied word-vector vocabulary.
	EncodeWithCorpus bool
	Finetune         bool
	FinetuneRatio    float64
}

// Result holds every pool produced by a run.
type Result struct {
	Dataset dataset.Name
	Classes domain.ClassSplit

	Train *pool.Pool
	Val   *pool.Pool
	Test  *pool.Pool
	// FinetuneTrain and FinetuneVal are set when Options.Finetune is on.
	FinetuneTrain *pool.Pool
	FinetuneVal   *pool.Pool

	Reports map[string]encode.Report
	// Errors holds the encode failure of each pool that could not be built.
	// The matching pool field is nil.
	Errors map[string]error
	Corpus stats.Corpus
	// CorpusVocab is built from the examples. It only drives encoding when
	// Options.EncodeWithCorpus is set.
	CorpusVocab *vocab.Vocab
	Encoding    domain.Vocabulary
}

// Pools lists the produced pools in display order, skipping pools that
// failed to encode.
func (r *Result) Pools() []*pool.Pool {
	out := make([]*pool.Pool, 0, 5)
	for _, p := range []*pool.Pool{r.Train, r.Val, r.Test, r.FinetuneTrain, r.FinetuneVal} {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Pipeline turns a flat example list into meta-train/val/test pools.
type Pipeline struct {
	opts   Options
	logger *log.Logger
}

// NewPipeline creates a pipeline. A nil logger discards progress output.
func NewPipeline(opts Options, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pipeline{opts: opts, logger: logger}
}

// Run splits, encodes and optionally re-splits examples. embedding is the
// word-vector vocabulary; it may be nil only when encoding with the corpus
// vocabulary.
//
// A pool that fails to encode does not discard the others: Run returns the
// partial Result together with the joined pool errors, and records each one
// in Result.Errors. The fine-tune split is skipped when the train pool failed.
func (p *Pipeline) Run(ctx context.Context, examples []domain.Example, embedding domain.Vocabulary) (*Result, error) {
	name := p.opts.Dataset
	classes, err := dataset.Classes(name)
	if err != nil {
		return nil, err
	}
	if p.opts.StrictPartition {
		if err := split.Validate(classes); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}
	}
	p.logger.Printf("train classes %v", classes.Train)
	p.logger.Printf("val classes %v", classes.Val)
	p.logger.Printf("test classes %v", classes.Test)

	corpus := stats.DescribeCorpus(examples)
	p.logger.Printf("class balance: %s", stats.FormatBalance(corpus.Balance))
	p.logger.Printf("avg len: %.2f", corpus.AvgLen)

	corpusVocab, err := vocab.Build(examples, vocab.BuildOptions{MinFreq: p.opts.MinFreq})
	if err != nil {
		return nil, fmt.Errorf("dataset %s: corpus vocabulary: %w", name, err)
	}
	p.logger.Printf("corpus vocab size: %d", corpusVocab.Size())

	enc := embedding
	if p.opts.EncodeWithCorpus {
		enc = corpusVocab
	}
	if enc == nil {
		return nil, fmt.Errorf("dataset %s: no vocabulary to encode with", name)
	}
	p.logger.Printf("encoding vocab size: %d", enc.Size())

	train, val, test := split.NewClassSplitter(classes).Split(examples)
	p.logger.Printf("#train %d, #val %d, #test %d", len(train), len(val), len(test))

	encOpts := encode.Options{MaxLen: p.maxLen(), FilterDegenerate: p.opts.FilterDegenerate}
	raw := []struct {
		name     string
		examples []domain.Example
	}{{TrainPool, train}, {ValPool, val}, {TestPool, test}}

	pools := make([]*pool.Pool, len(raw))
	reports := make([]encode.Report, len(raw))
	errs := make([]error, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range raw {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pl, rep, err := encode.Encode(r.name, r.examples, enc, encOpts)
			if err != nil {
				errs[i] = fmt.Errorf("dataset %s: %w", name, err)
				return nil
			}
			pools[i], reports[i] = pl, rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", name, err)
	}

	res := &Result{
		Dataset:     name,
		Classes:     classes,
		Val:         pools[1],
		Test:        pools[2],
		Reports:     make(map[string]encode.Report, len(raw)),
		Errors:      make(map[string]error),
		Corpus:      corpus,
		CorpusVocab: corpusVocab,
		Encoding:    enc,
	}
	if pools[0] != nil {
		res.Train = pools[0].Tagged(true)
	}
	for i, r := range raw {
		if errs[i] != nil {
			res.Errors[r.name] = errs[i]
			p.logger.Printf("%s: %v", r.name, errs[i])
			continue
		}
		res.Reports[r.name] = reports[i]
		p.logger.Printf("%s: max_len %d, %d degenerate rows, %d removed", r.name, reports[i].MaxLen, len(reports[i].Degenerate), reports[i].Removed)
	}

	if p.opts.Finetune && res.Train != nil {
		a, b, err := split.Stratified(res.Train, p.opts.FinetuneRatio)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: finetune split: %w", name, err)
		}
		res.FinetuneTrain, res.FinetuneVal = a, b
		p.logger.Printf("finetune: #train %d, #val %d", a.Len(), b.Len())
	}
	return res, errors.Join(errs...)
}

func (p *Pipeline) maxLen() int {
	switch {
	case p.opts.MaxLen > 0:
		return p.opts.MaxLen
	case p.opts.MaxLen < 0:
		return 0
	default:
		return dataset.MaxLen(p.opts.Dataset)
	}
}
