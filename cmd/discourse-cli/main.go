package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/discourse/pkg/discourse"
	"github.com/cognicore/discourse/pkg/discourse/config"
)

func main() {
	var (
		mwPath     = flag.String("mw", "", "Micro-world .mw file (required)")
		configPath = flag.String("config", "", "YAML configuration file (optional)")
		say        = flag.String("say", "", "One-shot utterance (non-interactive mode)")
		verbose    = flag.Bool("v", false, "Log to stderr")
	)
	flag.Parse()

	if *mwPath == "" {
		log.Fatal("--mw required")
	}

	ctx := context.Background()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewProduction()
		if err != nil {
			log.Fatal(err)
		}
		logger = l
		defer logger.Sync()
	}

	manager, cleanup, err := buildManager(ctx, *configPath, *mwPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// One-shot mode
	if *say != "" {
		speak(ctx, manager, *say)
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Printf("  Micro-world: %s\n", manager.MicroworldName())
	fmt.Println("  Romanian dialogue assistant")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type in Romanian; without a Romanian keyboard use")
	fmt.Println("a@ -> ă, a^ -> â, i^ -> î, s@ -> ș, t@ -> ț.")
	fmt.Println("Commands: 'dump concepts', 'dump predicates', 'exit'.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			fmt.Println("La revedere.")
			return
		case "dump concepts":
			fmt.Println(manager.ConceptsAsString())
			continue
		case "dump predicates":
			fmt.Println(manager.PredicatesAsString())
			continue
		}

		speak(ctx, manager, input)
	}
}

func speak(ctx context.Context, manager *discourse.Manager, input string) {
	state := manager.DoConversation(ctx, input)
	fmt.Println(strings.Join(state.Reply, " "))
	if state.Done() {
		fmt.Print(state.Behaviour)
	}
	fmt.Println()
}

func buildManager(ctx context.Context, configPath, mwPath string, logger *zap.Logger) (*discourse.Manager, func(), error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	manager, err := discourse.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build assistant: %w", err)
	}

	if err := manager.LoadCaches(ctx); err != nil {
		logger.Warn("resource caches not loaded", zap.Error(err))
	}
	if err := manager.LoadMicroworld(ctx, mwPath); err != nil {
		manager.Close()
		return nil, nil, fmt.Errorf("load micro-world: %w", err)
	}

	cleanup := func() {
		if err := manager.FlushCaches(ctx); err != nil {
			logger.Warn("resource caches not flushed", zap.Error(err))
		}
		manager.Close()
	}
	return manager, cleanup, nil
}
