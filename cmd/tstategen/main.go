// Command tstategen expands a YAML peripheral specification into a typed
// state machine API built on pkg/typestate.
//
// Usage:
//
//	//go:generate go run github.com/mash-protocol/typestate-go/cmd/tstategen -spec i2cbus.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/mash-protocol/typestate-go/pkg/tsspec"
)

// config holds the command line settings of one generator run.
type config struct {
	SpecPath        string
	Output          string
	Package         string
	TypestateImport string
	Diagram         string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to the peripheral specification YAML")
	flag.StringVar(&cfg.Output, "output", "", "Output Go file (default: <spec dir>/<peripheral>_gen.go)")
	flag.StringVar(&cfg.Package, "package", "", "Override the package name declared in the spec")
	flag.StringVar(&cfg.TypestateImport, "typestate-import", DefaultTypestateImport, "Import path of the typestate runtime package")
	flag.StringVar(&cfg.Diagram, "diagram", "", "Optional output path for a Mermaid state diagram (Markdown)")
	flag.Parse()

	if cfg.SpecPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: tstategen -spec <file.yaml> [-output <file.go>] [-package <name>] [-typestate-import <path>] [-diagram <file.md>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	spec, err := tsspec.ReadFile(cfg.SpecPath)
	if err != nil {
		return err
	}
	if cfg.Package != "" {
		spec.Package = cfg.Package
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("%s: %w", cfg.SpecPath, err)
	}

	code, err := Generate(spec, GenerateOptions{
		Source:          filepath.Base(cfg.SpecPath),
		TypestateImport: cfg.TypestateImport,
	})
	if err != nil {
		return fmt.Errorf("generating %s: %w", spec.Peripheral, err)
	}

	outPath := cfg.Output
	if outPath == "" {
		outPath = defaultOutput(cfg.SpecPath, spec)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeFormatted(outPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(outPath), err)
	}
	fmt.Printf("  generated %s\n", outPath)

	if cfg.Diagram != "" {
		doc, err := GenerateDiagram(spec)
		if err != nil {
			return fmt.Errorf("generating diagram: %w", err)
		}
		if err := os.WriteFile(cfg.Diagram, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("writing diagram: %w", err)
		}
		fmt.Printf("  generated %s\n", cfg.Diagram)
	}
	return nil
}

// defaultOutput places the generated file next to the spec, named after the
// peripheral ("I2CBus" -> "i2c_bus_gen.go").
func defaultOutput(specPath string, spec *tsspec.RawSpec) string {
	base := tsspec.FileBase(spec.Peripheral)
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(specPath), filepath.Ext(specPath))
	}
	return filepath.Join(filepath.Dir(specPath), base+"_gen.go")
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
