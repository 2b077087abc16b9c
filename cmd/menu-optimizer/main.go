package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"menu-optimizer/internal/app"
	"menu-optimizer/internal/config"
	"menu-optimizer/internal/database"
	"menu-optimizer/internal/logger"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/metrics"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.DatabasePath, zl)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	application, err := app.NewApp(cfg, db, zl)
	if err != nil {
		zl.Fatal("failed to initialize app", zap.Error(err))
	}

	switch os.Args[1] {
	case "optimize":
		runOptimize(ctx, application, os.Args[2:], zl)
	case "import-foods":
		runImport(ctx, application, os.Args[2:], zl)
	case "seed-catalog":
		n, err := application.SeedCatalog(ctx)
		if err != nil {
			zl.Fatal("seeding failed", zap.Error(err))
		}
		fmt.Printf("Stored %d starter foods.\n", n)
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		keepPlans := cleanupCmd.Int("keep-plans", 50, "Keep the newest N stored plans")
		cleanupCmd.Parse(os.Args[2:])

		affected, removed, err := application.CleanupMetrics(ctx, *days, *keepPlans)
		if err != nil {
			zl.Fatal("cleanup failed", zap.Error(err))
		}
		fmt.Printf("Successfully removed %d old run records and %d stored plans.\n", affected, removed)
	case "show-plan":
		showCmd := flag.NewFlagSet("show-plan", flag.ExitOnError)
		runID := showCmd.String("run", "", "Run ID of the plan (default newest)")
		showCmd.Parse(os.Args[2:])

		res, err := application.LoadPlan(ctx, *runID)
		if err != nil {
			zl.Fatal("failed to load plan", zap.Error(err))
		}
		application.PrintPlan(res)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runOptimize(ctx context.Context, application *app.App, args []string, zl *zap.Logger) {
	cmd := flag.NewFlagSet("optimize", flag.ExitOnError)
	days := cmd.Int("days", 7, "Number of days to plan")
	budget := cmd.String("budget", string(menu.BudgetMedium), "Budget: low, medium or high")
	cooking := cmd.String("cooking", string(menu.CookingMedium), "Cooking time: quick, medium or long")
	snacks := cmd.Bool("snacks", false, "Include morning and afternoon snacks")
	restrictions := cmd.String("restrictions", "", "Comma-separated restricted categories")
	favorites := cmd.String("favorites", "", "Comma-separated favorite ingredients")
	dislikes := cmd.String("dislikes", "", "Comma-separated disliked ingredients")
	weight := cmd.Float64("weight", 0, "Body weight in kg (default from BODY_WEIGHT_KG)")
	train := cmd.String("train", "", "Comma-separated exercise days, 1-based")
	start := cmd.String("start", "", "First plan date, YYYY-MM-DD (default today)")
	timeout := cmd.Duration("timeout", 0, "Stop the search after this long and keep the best plan")
	cmd.Parse(args)

	profile := menu.UserProfile{
		Days:          *days,
		Budget:        menu.Budget(*budget),
		CookingTime:   menu.CookingTime(*cooking),
		IncludeSnacks: *snacks,
		Restrictions:  splitFlag(*restrictions),
		Favorites:     splitFlag(*favorites),
		Dislikes:      splitFlag(*dislikes),
		BodyWeightKg:  *weight,
		StartDate:     time.Now(),
	}
	if *start != "" {
		d, err := time.ParseInLocation(time.DateOnly, *start, time.Local)
		if err != nil {
			zl.Fatal("invalid start date", zap.String("start", *start), zap.Error(err))
		}
		profile.StartDate = d
	}
	for _, s := range splitFlag(*train) {
		var d int
		if _, err := fmt.Sscanf(s, "%d", &d); err != nil || d < 1 {
			zl.Fatal("invalid training day", zap.String("day", s))
		}
		profile.ActivityDays = append(profile.ActivityDays, d-1)
	}

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	fmt.Printf("Optimizing a %d-day plan...\n", profile.Days)
	res, err := application.Optimize(ctx, profile, metrics.SourceCLI)
	if err != nil {
		zl.Fatal("optimization failed", zap.Error(err))
	}
	application.PrintPlan(res)
}

func runImport(ctx context.Context, application *app.App, args []string, zl *zap.Logger) {
	cmd := flag.NewFlagSet("import-foods", flag.ExitOnError)
	url := cmd.String("url", "", "Page holding a nutrition table")
	noGrade := cmd.Bool("no-grade", false, "Skip LLM grading of ungraded foods")
	cmd.Parse(args)

	if *url == "" {
		zl.Fatal("import-foods requires -url")
	}

	grader, closeGrader, err := app.NewGrader(ctx, application.Config(), zl)
	if err != nil {
		zl.Fatal("failed to initialize grader", zap.Error(err))
	}
	defer func() {
		if err := closeGrader(); err != nil {
			zl.Warn("failed to close grader", zap.Error(err))
		}
	}()
	if *noGrade {
		grader = nil
	} else if grader == nil {
		zl.Warn("no GEMINI_API_KEY or GROQ_API_KEY set, importing without grading")
	}

	n, err := application.ImportFoods(ctx, *url, grader)
	if err != nil {
		zl.Error("import failed", zap.Error(err))
		return
	}
	fmt.Printf("Imported %d foods.\n", n)
}

func splitFlag(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: menu-optimizer <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  optimize           Search for a meal plan and print it")
	fmt.Println("  import-foods       Import foods from an HTML nutrition table")
	fmt.Println("  seed-catalog       Store the built-in starter foods")
	fmt.Println("  show-plan          Print a stored plan")
	fmt.Println("  metrics-cleanup    Remove old run records and stored plans")
}
