package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kbforge/kbforge/internal/cli"
	"github.com/kbforge/kbforge/internal/config"
	"github.com/kbforge/kbforge/internal/configh"
	"github.com/kbforge/kbforge/internal/docs"
	"github.com/kbforge/kbforge/internal/info"
	"github.com/kbforge/kbforge/internal/utils"
)

func main() {
	// Define subcommands
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	generateKeyboard := generateCmd.String("kb", "", "Keyboard to generate config.h for")
	generateKeymap := generateCmd.String("km", "", "Keymap whose overrides to merge in")
	generateOutput := generateCmd.String("o", "", "File to write to (prints to stdout when omitted)")
	generateQuiet := generateCmd.Bool("q", false, "Quiet mode, only output error messages")

	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	showKeyboard := showCmd.String("kb", "", "Keyboard to show")
	showKeymap := showCmd.String("km", "", "Keymap whose overrides to merge in")
	showFormat := showCmd.String("f", "json", "Output format: json or yaml")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	newCmd := flag.NewFlagSet("new", flag.ExitOnError)
	newKeyboard := newCmd.String("kb", "", "Keyboard directory name (or pass as positional)")
	newDisplay := newCmd.String("name", "", "Display name (defaults to the directory name)")
	newManufacturer := newCmd.String("manufacturer", "", "Manufacturer name")
	newVendorID := newCmd.String("vid", "0xFEED", "USB vendor ID")
	newProductID := newCmd.String("pid", "0x0000", "USB product ID")
	newYes := newCmd.Bool("yes", false, "Skip interactive prompts and use provided/default values")

	docsCmd := flag.NewFlagSet("docs", flag.ExitOnError)
	docsDest := docsCmd.String("o", "", "Destination directory for the generated site")

	if len(os.Args) < 2 {
		fmt.Println("Usage: kbforge [command]")
		fmt.Println("Commands:")
		fmt.Println("  generate   Generate a config.h from a keyboard definition")
		fmt.Println("  show       Print the merged keyboard definition")
		fmt.Println("  list       List all keyboards")
		fmt.Println("  new        Scaffold a new keyboard")
		fmt.Println("  docs       Render keyboard readmes to a static site")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		generateCmd.Parse(os.Args[2:])
		handleGenerate(*generateKeyboard, *generateKeymap, *generateOutput, *generateQuiet)

	case "show":
		showCmd.Parse(os.Args[2:])
		handleShow(*showKeyboard, *showKeymap, *showFormat)

	case "list":
		listCmd.Parse(os.Args[2:])
		handleList()

	case "new":
		newCmd.Parse(os.Args[2:])
		handleNew(newCmd, *newKeyboard, *newDisplay, *newManufacturer, *newVendorID, *newProductID, *newYes)

	case "docs":
		docsCmd.Parse(os.Args[2:])
		handleDocs(*docsDest)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func handleGenerate(keyboard, keymap, output string, quiet bool) {
	// Load config
	cfg, err := config.LoadFromFile(config.DefaultFile)
	if err != nil {
		if !quiet {
			log.Printf("Warning: could not load config file: %v. Using defaults.", err)
		}
		cfg = config.NewDefaultConfig()
	}
	if cfg.Generate.Quiet {
		quiet = true
	}

	keyboard, keymap = pickKeyboard(cfg, keyboard, keymap)
	if keyboard == "" {
		log.Fatalf("Missing keyboard: pass -kb, set generate.keyboard in %s, or run from inside a keyboard directory.", config.DefaultFile)
	}

	loader := info.NewLoader(cfg.Project.Keyboards)
	if !loader.IsKeyboard(keyboard) {
		log.Fatalf("Invalid keyboard: %q", keyboard)
	}

	record, err := loader.Resolve(keyboard, keymap)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", keyboard, err)
	}

	header, err := configh.Generate(record)
	if err != nil {
		log.Fatalf("Failed to generate config.h for %s: %v", keyboard, err)
	}

	if output == "" {
		fmt.Print(header)
		return
	}

	if err := utils.WriteFileRotate(output, []byte(header)); err != nil {
		log.Fatalf("Failed to write config.h: %v", err)
	}
	if !quiet {
		log.Printf("Wrote config.h to %s.", output)
	}
}

func handleShow(keyboard, keymap, format string) {
	// Load config
	cfg, err := config.LoadFromFile(config.DefaultFile)
	if err != nil {
		cfg = config.NewDefaultConfig()
	}

	keyboard, keymap = pickKeyboard(cfg, keyboard, keymap)
	if keyboard == "" {
		log.Fatalf("Missing keyboard: pass -kb, set generate.keyboard in %s, or run from inside a keyboard directory.", config.DefaultFile)
	}

	loader := info.NewLoader(cfg.Project.Keyboards)
	record, err := loader.Resolve(keyboard, keymap)
	if err != nil {
		log.Fatalf("Failed to resolve %s: %v", keyboard, err)
	}

	var out []byte
	switch format {
	case "json":
		out, err = json.MarshalIndent(record.Raw(), "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(record.Raw())
	default:
		log.Fatalf("Unknown format: %q (want json or yaml)", format)
	}
	if err != nil {
		log.Fatalf("Failed to encode %s: %v", keyboard, err)
	}
	fmt.Print(string(out))
}

func handleList() {
	// Load config
	cfg, err := config.LoadFromFile(config.DefaultFile)
	if err != nil {
		cfg = config.NewDefaultConfig()
	}

	names, err := info.NewLoader(cfg.Project.Keyboards).List()
	if err != nil {
		log.Fatalf("Failed to list keyboards: %v", err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func handleNew(newCmd *flag.FlagSet, name, display, manufacturer, vid, pid string, yes bool) {
	// Load config
	cfg, err := config.LoadFromFile(config.DefaultFile)
	if err != nil {
		cfg = config.NewDefaultConfig()
	}

	// Determine name: prefer positional arg if present, then -kb
	if name == "" && newCmd.NArg() >= 1 {
		name = newCmd.Arg(0)
	}

	opts := cli.NewOptions{
		Name:         name,
		DisplayName:  display,
		Manufacturer: manufacturer,
		VendorID:     vid,
		ProductID:    pid,
	}

	if !yes {
		cli.FillNewOptionsInteractive(&opts)
	}

	if err := cli.New(opts, embeddedTemplates, cfg.Project.Keyboards); err != nil {
		log.Fatalf("Failed to create keyboard: %v", err)
	}

	fmt.Printf("\nSuccessfully created keyboard in '%s'\n", filepath.Join(cfg.Project.Keyboards, filepath.FromSlash(opts.Name)))
	fmt.Println("Next steps:")
	fmt.Printf("  kbforge generate -kb %s   # print its config.h\n", opts.Name)
	fmt.Println("  kbforge docs              # build the HTML reference")
}

func handleDocs(destOverride string) {
	// Load config
	cfg, err := config.LoadFromFile(config.DefaultFile)
	if err != nil {
		log.Printf("Warning: could not load config file: %v. Using defaults.", err)
		cfg = config.NewDefaultConfig()
	}

	// Use config's build directory if destDir not specified
	outDir := destOverride
	if outDir == "" {
		outDir = cfg.Docs.BuildDir
	}

	fmt.Printf("Rendering to: %s\n", outDir)
	builder := docs.NewBuilder()
	ctx := &docs.Context{
		Root:        cfg.Project.Keyboards,
		DestDir:     outDir,
		TemplatesFS: embeddedTemplates,
	}
	if err := builder.Build(ctx); err != nil {
		log.Fatalf("Failed to render docs: %v", err)
	}

	fmt.Printf("Docs built successfully to %s!\n", outDir)
}

// pickKeyboard fills in the keyboard and keymap from the tool config and the
// working directory when the flags left them empty. Flags win over config,
// config wins over detection.
func pickKeyboard(cfg *config.Config, keyboard, keymap string) (string, string) {
	if keyboard == "" {
		keyboard = cfg.Generate.Keyboard
	}
	if keymap == "" {
		keymap = cfg.Generate.Keymap
	}
	if keyboard == "" || keymap == "" {
		if cwd, err := os.Getwd(); err == nil {
			kb, km := info.Detect(cfg.Project.Keyboards, cwd)
			if keyboard == "" {
				keyboard = kb
			}
			if keymap == "" {
				keymap = km
			}
		}
	}
	return keyboard, keymap
}
