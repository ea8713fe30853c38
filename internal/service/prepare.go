package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"metaprep/internal/config"
	"metaprep/internal/dataset"
	"metaprep/internal/domain"
	"metaprep/internal/loader"
	"metaprep/internal/vectors"
	"metaprep/internal/vocab"
)

// Prepare loads the configured dataset and word vectors from disk and runs
// the pipeline over them. Like Pipeline.Run it may return a partial Result
// with a non-nil error.
func Prepare(ctx context.Context, cfg *config.AppConfig, logger *log.Logger) (*Result, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	p := NewPipeline(opts, logger)

	p.logger.Printf("loading data from %s", cfg.DataPath())
	examples, err := loader.ReadFile(cfg.DataPath())
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", opts.Dataset, err)
	}

	var embedding domain.Vocabulary
	if !opts.EncodeWithCorpus {
		embedding, err = loadVectorVocab(ctx, cfg.Vectors, p.logger)
		if err != nil {
			return nil, err
		}
	}
	return p.Run(ctx, examples, embedding)
}

// OptionsFromConfig maps file configuration onto pipeline options.
func OptionsFromConfig(cfg *config.AppConfig) (Options, error) {
	name, err := dataset.Parse(cfg.Dataset)
	if err != nil {
		return Options{}, err
	}
	var corpus bool
	switch cfg.Encoder.Vocabulary {
	case "vectors", "":
	case "corpus":
		corpus = true
	default:
		return Options{}, fmt.Errorf("unknown encoder vocabulary: %s", cfg.Encoder.Vocabulary)
	}
	return Options{
		Dataset:          name,
		MaxLen:           cfg.Encoder.MaxLen,
		FilterDegenerate: cfg.Encoder.FilterDegenerate,
		StrictPartition:  cfg.StrictPartition,
		MinFreq:          cfg.Vocabulary.MinFreq,
		EncodeWithCorpus: corpus,
		Finetune:         cfg.Finetune.Enabled,
		FinetuneRatio:    cfg.Finetune.Ratio,
	}, nil
}

func loadVectorVocab(ctx context.Context, cfg config.VectorsConfig, logger *log.Logger) (*vocab.Vocab, error) {
	if cfg.Download {
		logger.Printf("checking word vectors at %s", cfg.Path)
		downloaded, err := vectors.Fetch(ctx, vectors.FetchConfig{
			URL:        cfg.URL,
			Path:       cfg.Path,
			Timeout:    time.Duration(cfg.TimeoutSecs) * time.Second,
			MaxRetries: cfg.MaxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("word vectors: %w", err)
		}
		if downloaded {
			logger.Printf("downloaded word vectors from %s", cfg.URL)
		}
	}
	logger.Printf("loading word vectors from %s", cfg.Path)
	stoi, err := vectors.ReadVocabFile(cfg.Path, vectors.VocabOptions{PadToken: cfg.PadToken, UnkToken: cfg.UnkToken})
	if err != nil {
		return nil, fmt.Errorf("word vectors: %w", err)
	}
	v, err := vocab.New(stoi, cfg.PadToken, cfg.UnkToken)
	if err != nil {
		return nil, fmt.Errorf("word vectors: %w", err)
	}
	logger.Printf("total num. of words: %d", v.Size())
	return v, nil
}
