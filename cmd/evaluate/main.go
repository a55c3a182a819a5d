package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/SanyamBinayake/SIH-Demo/internal/application/services"
	"github.com/SanyamBinayake/SIH-Demo/internal/evaluation"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/clients/icd"
	"github.com/SanyamBinayake/SIH-Demo/internal/infrastructure/observability"
	"github.com/SanyamBinayake/SIH-Demo/internal/mapping"
	"github.com/SanyamBinayake/SIH-Demo/internal/terminology"
	"github.com/SanyamBinayake/SIH-Demo/pkg/config"
)

func main() {
	goldenPath := flag.String("golden", "config/golden_cases.json", "path to the golden case set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	logger := observability.GetLogger()

	store := terminology.NewStore()
	if _, err := store.LoadCSV(cfg.Namaste.CSVPath); err != nil {
		log.Fatalf("Failed to load NAMASTE terminology: %v", err)
	}

	icdClient, err := icd.NewClient(&cfg.ICD)
	if err != nil {
		log.Fatalf("Failed to initialize ICD-11 client: %v", err)
	}

	mapper := mapping.NewMapper(icdClient, mapping.NewTokenizer(), *logger)
	mappingService := services.NewMappingService(store, mapper)

	cases, err := evaluation.LoadGoldenCases(*goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden cases: %v", err)
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatalf("Invalid golden cases: %v", err)
	}

	runner := evaluation.NewRunner(mappingService)
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	// Output results as JSON
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
