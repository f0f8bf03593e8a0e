package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/config"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/seeder"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/upstream"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, list, clear")
	count := flag.Int("count", 50, "Number of employees to create")
	workers := flag.Int("workers", 4, "Concurrent upstream calls")
	retries := flag.Int("retries", 2, "Retries per failed upstream call")
	yes := flag.Bool("yes", false, "Skip the confirmation prompt for clear")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := config.LoadEnvConfig(); err != nil {
		log.Fatalf("Failed to load env config: %v", err)
	}
	cfg := config.DefaultEnvConfig
	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)

	fmt.Println("Employee Seeder")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Upstream: %s\n", cfg.UPSTREAM_BASE_URL)

	client := upstream.New(cfg.UPSTREAM_BASE_URL, cfg.UPSTREAM_TIMEOUT, cfg.UPSTREAM_MAX_IDLE_CONNS)
	s := seeder.New(client, *workers, *retries, time.Now().UnixNano())

	switch *action {
	case "seed":
		performSeed(ctx, s, *count)
	case "list":
		performList(ctx, s)
	case "clear":
		performClear(ctx, s, *yes)
	default:
		fmt.Printf("Unknown action: %s\n", *action)
		flag.PrintDefaults()
		os.Exit(2)
	}
}

func performSeed(ctx context.Context, s *seeder.Seeder, count int) {
	fmt.Printf("Creating %d employees...\n", count)
	_, res, err := s.Seed(ctx, count)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Printf("Created %d, failed %d in %s\n", res.Succeeded, res.Failed, res.Elapsed.Round(time.Millisecond))
}

func performList(ctx context.Context, s *seeder.Seeder) {
	employees, err := s.List(ctx)
	if err != nil {
		log.Fatalf("List failed: %v", err)
	}
	for _, e := range employees {
		fmt.Printf("%s  %-25s %-20s %3d %8d\n", e.ID, e.Name, e.Title, e.Age, e.Salary)
	}
	fmt.Printf("%d employees\n", len(employees))
}

func performClear(ctx context.Context, s *seeder.Seeder, yes bool) {
	if !yes {
		fmt.Println("This will delete every employee held by the upstream service!")
		fmt.Print("Continue? (yes/no): ")
		response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(response) != "yes" {
			fmt.Println("Cancelled.")
			return
		}
	}

	res, err := s.Clear(ctx)
	if err != nil {
		log.Fatalf("Clear failed: %v", err)
	}
	fmt.Printf("Deleted %d names, failed %d in %s\n", res.Succeeded, res.Failed, res.Elapsed.Round(time.Millisecond))
}
