// Command verify re-derives the winners of a Pump Pot reward cycle from
// a downloaded, unzipped verification package and prints the report.
// It performs no network or database operations.
//
// Usage:
//
//	verify /path/to/2025-10-28T14_30
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pumppot-labs/pumppot-verifier/internal/pkgloader"
	"github.com/pumppot-labs/pumppot-verifier/internal/raffle"
	"github.com/pumppot-labs/pumppot-verifier/internal/report"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if len(os.Args) < 2 {
		log.Fatal("Path to the unzipped verification package directory is required as a command line argument")
	}
	packageDir := os.Args[1]

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	pkg, err := pkgloader.Load(packageDir)
	if err != nil {
		log.Fatalf("Could not load verification package: %v", err)
	}

	rep, err := raffle.ComputeWinners(pkg.Records, pkg.Metadata.SeedMaterial, pkg.Metadata.Rules)
	if err != nil {
		log.Fatalf("Could not verify cycle: %v", err)
	}
	rep.CycleID = pkg.Metadata.CycleID

	fmt.Print(report.Format(rep))
}
