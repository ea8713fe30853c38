package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"metaprep/internal/config"
	"metaprep/internal/dataset"
	"metaprep/internal/service"
	"metaprep/internal/stats"
	"metaprep/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, datasetName string
	var browse, quiet bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/metaprep/config.yaml if not provided)")
	flag.StringVar(&datasetName, "dataset", "", "Dataset to prepare, overrides the config file")
	flag.BoolVar(&browse, "tui", false, "Browse the encoded pools interactively")
	flag.BoolVar(&quiet, "quiet", false, "Suppress progress output")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if datasetName != "" {
		cfg.Dataset = datasetName
	}
	if _, err := dataset.Parse(cfg.Dataset); err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if quiet {
		logger = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := service.Prepare(ctx, cfg, logger)
	if res == nil {
		log.Fatalf("prepare failed: %v", err)
	}
	if err != nil {
		log.Printf("some pools failed: %v", err)
	}

	summary := summarize(res)
	if !browse {
		fmt.Println(summary)
		return
	}

	decoder, _ := res.Encoding.(tui.Decoder)
	m := tui.New(res.Pools(), decoder, res.Encoding.PadID(), strings.SplitN(summary, "\n", 2)[0])
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func summarize(res *service.Result) string {
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s: corpus %s, corpus vocab %d, encoding vocab %d",
		res.Dataset, res.Corpus, res.CorpusVocab.Size(), res.Encoding.Size()))
	lines := []string{title}
	for _, p := range res.Pools() {
		s := stats.DescribePool(p, res.Encoding.UnkID())
		line := s.String()
		if rep, ok := res.Reports[p.Name]; ok {
			line += fmt.Sprintf(", degenerate %d", len(rep.Degenerate))
			if rep.Removed > 0 {
				line += fmt.Sprintf(" (removed %d)", rep.Removed)
			}
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}
