// pagectl moves pages between environments as portable JSON snapshots.
//
//	pagectl export [-slug <slug> | -all] [-out <dir>]
//	pagectl import [-file <path> | -dir <path>] [-update] [-force]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pagecms/internal/config"
	"github.com/pagecms/internal/db"
	"github.com/pagecms/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	switch os.Args[1] {
	case "export":
		os.Exit(runExport(os.Args[2:], cfg))
	case "import":
		os.Exit(runImport(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pagectl <export|import> [flags]")
	fmt.Fprintln(os.Stderr, "  export: -slug <slug> | -all, -out <dir>")
	fmt.Fprintln(os.Stderr, "  import: -file <path> | -dir <path>, -update, -force")
}

func runExport(args []string, cfg config.AppConfig) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	slug := fs.String("slug", "", "export a specific page by slug")
	all := fs.Bool("all", false, "export all pages")
	out := fs.String("out", cfg.ExportDir, "output directory")
	fs.Parse(args)

	exporter := service.NewPageExportService(db.DB)

	var (
		results []service.ExportResult
		err     error
	)
	switch {
	case *slug != "":
		results, err = exporter.ExportBySlug(*slug, *out)
	case *all:
		results, err = exporter.ExportAll(*out)
	default:
		fmt.Fprintln(os.Stderr, "please specify -slug=<slug> or -all")
		return 1
	}

	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			fmt.Fprintf(os.Stderr, "page with slug %q not found\n", *slug)
		} else {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		}
		return 1
	}

	for _, result := range results {
		fmt.Printf("exported: %s -> %s\n", result.Title, result.Filename)
	}
	fmt.Printf("\nsuccessfully exported %d page(s) to %s\n", len(results), *out)
	fmt.Println("to import them in another environment, run: pagectl import -file=<path> or -dir=<dir>")
	return 0
}

func runImport(args []string) int {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "import a specific JSON file")
	dir := fs.String("dir", "", "import all JSON files from a directory")
	update := fs.Bool("update", false, "update existing pages instead of skipping them")
	force := fs.Bool("force", false, "skip confirmation prompt")
	fs.Parse(args)

	files, err := service.DiscoverImportFiles(*file, *dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no files to import")
		return 1
	}

	fmt.Printf("found %d file(s) to import\n", len(files))

	if !*force && !confirm("proceed with the import?") {
		fmt.Println("import cancelled")
		return 0
	}

	importer := service.NewPageImportService(db.DB)
	results, summary := importer.ImportFiles(files, *update)

	for _, result := range results {
		switch result.Outcome {
		case service.OutcomeImported:
			fmt.Printf("imported: %s (%s)\n", result.Title, result.Slug)
		case service.OutcomeUpdated:
			fmt.Printf("updated: %s (%s)\n", result.Title, result.Slug)
		case service.OutcomeSkipped:
			fmt.Printf("skipped (already exists): %s (%s)\n", result.Title, result.Slug)
		case service.OutcomeError:
			fmt.Fprintf(os.Stderr, "error: %s\n", result.File)
			for _, reason := range result.Reasons {
				fmt.Fprintf(os.Stderr, "  - %s\n", reason)
			}
		}
	}

	fmt.Println("\nimport completed:")
	fmt.Printf("  imported: %d\n", summary.Imported)
	if summary.Updated > 0 {
		fmt.Printf("  updated: %d\n", summary.Updated)
	}
	if summary.Skipped > 0 {
		fmt.Printf("  skipped: %d\n", summary.Skipped)
	}
	if summary.Errors > 0 {
		fmt.Printf("  errors: %d\n", summary.Errors)
	}

	if summary.Failed() {
		return 1
	}
	return 0
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
