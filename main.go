package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/nrjt/eduplatform/sdk"
)

func main() {
	var (
		config   = flag.String("config", "configs/default.json", "Configuration file path")
		standard = flag.String("standard", "9th", "Standard to list")
		board    = flag.String("board", "CBSE", "Board to list (empty for NEET/JEE)")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("EduPlatform - SDK Demo")
	fmt.Println("======================")
	fmt.Println("For the web server, run: go run cmd/api/main.go")
	fmt.Println()

	runDemo(*config, sdk.Scope{Standard: *standard, Board: *board})
}

func showHelp() {
	fmt.Println("EduPlatform - Educational Resource Browser")
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run main.go [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config string")
	fmt.Println("        Configuration file path (default: configs/default.json)")
	fmt.Println("  -standard string")
	fmt.Println("        Standard to list (default: 9th)")
	fmt.Println("  -board string")
	fmt.Println("        Board to list (default: CBSE)")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("Web Server:")
	fmt.Println("  go run cmd/api/main.go [config-file]")
}

func runDemo(configPath string, scope sdk.Scope) {
	fmt.Printf("Loading configuration from: %s\n", configPath)

	portal, err := sdk.New(configPath)
	if err != nil {
		log.Fatalf("Failed to initialize portal: %v", err)
	}
	defer portal.Close()

	fmt.Println("\nStandards:")
	for _, std := range portal.Standards() {
		fmt.Printf("  %-6s %-15s %v\n", std.ID, std.Label, std.Boards)
	}

	// Upload a file and a reference link the way the modal would
	file := sdk.FileEntry{
		Name: "demo_lecture.mp4",
		Size: sdk.FormatSize(42 * 1024 * 1024),
		Date: time.Now().Format(portal.GetConfig().Paths.DateLayout),
		Type: sdk.KindVideo,
	}
	if err := portal.Upload(scope, sdk.KindVideo, "Demo", sdk.Attached(file)); err != nil {
		log.Fatalf("Failed to upload: %v", err)
	}
	if err := portal.Upload(scope, sdk.KindVideo, "Demo", sdk.LinkOnly("https://example.com/demo")); err != nil {
		log.Fatalf("Failed to set reference link: %v", err)
	}

	for _, kind := range []sdk.Kind{sdk.KindVideo, sdk.KindDocument} {
		folders, err := portal.Resources(scope, kind)
		if err != nil {
			log.Fatalf("Failed to list %s resources: %v", kind, err)
		}

		fmt.Printf("\n%s (%s):\n", kind.SectionLabel(), scope)
		if len(folders) == 0 {
			fmt.Println("  No content uploaded yet.")
		}
		for _, folder := range folders {
			fmt.Printf("  %s (%d files)", folder.FolderName, len(folder.Files))
			if folder.Link != "" {
				fmt.Printf(" -> %s", folder.Link)
			}
			fmt.Println()
			for _, f := range folder.Files {
				fmt.Printf("    %s  %s  %s\n", f.Name, f.Size, f.Date)
			}
		}
	}

	fmt.Println("\nTable Information:")
	tableInfo, err := portal.GetTableInfo()
	if err != nil {
		log.Printf("Failed to get table info: %v", err)
	} else {
		for _, table := range tableInfo {
			fmt.Printf("  %s: %d rows\n", table.Name, table.RowCount)
		}
	}

	fmt.Println("\nEduPlatform SDK demo completed successfully!")
}
