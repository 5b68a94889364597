// mobyswap is a CLI utility for moving moby models between level
// working copies.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/ratchetmods/mobyswap/internal/config"
	"github.com/ratchetmods/mobyswap/internal/logger"
	"github.com/ratchetmods/mobyswap/pkg/integrity"
	"github.com/ratchetmods/mobyswap/pkg/level"
	"github.com/ratchetmods/mobyswap/pkg/mobx"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "export":
		cmdExport(cfg, rest)
	case "import":
		cmdImport(cfg, rest)
	case "check":
		cmdCheck(rest)
	case "info":
		cmdInfo(rest)
	case "texdump":
		cmdTexdump(cfg, rest)
	case "consolidate":
		cmdConsolidate(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mobyswap - moby model import/export utility for level working copies

Usage:
  mobyswap [flags] <command> [options]

Commands:
  export <level.lvz> <model-id>      Write one model to a portable .mobx file
  import <level.lvz> <file.mobx...>  Merge model files into a level
  check <level.lvz>                  Report pvar and reference problems
  info <file>                        Show container details
  texdump <file.mobx>                Dump a container's embedded textures
  consolidate <level.lvz>            Rebuild the shared pvar table

Examples:
  mobyswap export oltanis.lvz 122
  mobyswap import oltanis.lvz crate_122.mobx vendor_1143.mobx
  mobyswap -debug import -overwrite oltanis.lvz gold_bolt_291.mobx
  mobyswap texdump -o previews crate_122.mobx`)
}

func parseModelID(s string) int32 {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad model id %q\n", s)
		os.Exit(1)
	}
	return int32(id)
}

func loadLevel(path string) *level.Level {
	lvl, err := mobx.LoadLevel(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return lvl
}

func parseCodec(name string) mobx.CompressionTag {
	codec, err := mobx.ParseCompressionTag(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return codec
}

func cmdExport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	codecName := fs.String("codec", cfg.Export.Codec, "Payload compression: none, lz4 or zstd")
	output := fs.String("o", "", "Output file (default <class>_<id>.mobx in the output dir)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mobyswap export <level.lvz> <model-id>")
		os.Exit(1)
	}

	codec := parseCodec(*codecName)
	lvl := loadLevel(fs.Arg(0))
	id := parseModelID(fs.Arg(1))

	path := *output
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s_%d.mobx", level.ClassName(id), id))
	}

	if err := mobx.NewExporter(logger.Log, codec).ExportByID(id, lvl, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported model %d (%s) to %s\n", id, level.ClassName(id), path)
}

func cmdImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", cfg.Import.Overwrite, "Replace models whose ids are already taken")
	codecName := fs.String("codec", cfg.Export.Codec, "Compression for the saved level")
	output := fs.String("o", "", "Write the updated level here instead of in place")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mobyswap import <level.lvz> <file.mobx...>")
		os.Exit(1)
	}

	codec := parseCodec(*codecName)
	levelPath := fs.Arg(0)
	lvl := loadLevel(levelPath)

	report := mobx.NewImporter(logger.Log).ImportMany(fs.Args()[1:], lvl, *overwrite)
	for _, res := range report.Results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "failed    %s: %v\n", res.Path, res.Err)
		} else {
			fmt.Printf("imported  %s as model %d (%s)\n", res.Path, res.ModelID, level.ClassName(res.ModelID))
		}
	}

	if !report.Success() {
		fmt.Fprintln(os.Stderr, "Nothing imported; level left untouched")
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = levelPath
	}
	if err := mobx.SaveLevel(lvl, outPath, codec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %s: %d models, %d textures, %d of %d files imported\n",
		outPath, len(lvl.Models), len(lvl.Textures), report.Succeeded(), len(report.Results))
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mobyswap check <level.lvz>")
		os.Exit(1)
	}

	lvl := loadLevel(fs.Arg(0))
	report := integrity.Check(lvl)

	if report.OK() {
		fmt.Printf("%s: %d models, %d mobys, no problems found\n",
			fs.Arg(0), len(lvl.Models), len(lvl.Mobys))
		return
	}

	for _, v := range report.Violations {
		fmt.Println(v)
	}
	fmt.Fprintf(os.Stderr, "\n%d problems found\n", len(report.Violations))
	os.Exit(1)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mobyswap info <file>")
		os.Exit(1)
	}

	info, err := mobx.Inspect(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File:     %s\n", fs.Arg(0))
	fmt.Printf("Kind:     %s (version %d)\n", info.Kind, info.Version)
	fmt.Printf("Codec:    %s\n", info.Codec)
	fmt.Printf("Payload:  %d bytes (%d on disk)\n", info.PayloadBytes, info.CompressedBytes)

	if info.Kind == "model" {
		fmt.Printf("Model:    %d (%s)\n", info.ModelID, info.Name)
		fmt.Printf("Origin:   %s\n", info.Origin)
		fmt.Printf("Textures: %d embedded, %d configs\n", info.Textures, info.Configs)
		fmt.Printf("Rig:      %d bones, %d animations\n", info.Bones, info.Animations)
		return
	}

	fmt.Printf("Level:    %s\n", info.Name)
	fmt.Printf("Contents: %d models, %d textures, %d mobys, %d pvar blocks\n",
		info.Models, info.Textures, info.Mobys, info.PVars)
}

func cmdTexdump(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("texdump", flag.ExitOnError)
	outDir := fs.String("o", "", "Output directory (default the configured output dir)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mobyswap texdump <file.mobx>")
		os.Exit(1)
	}

	_, textures, err := mobx.ReadModel(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(textures) == 0 {
		fmt.Println("No embedded textures")
		return
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(filepath.Base(fs.Arg(0)), filepath.Ext(fs.Arg(0)))
	for i := range textures {
		tex := &textures[i]
		name := fmt.Sprintf("%s_tex%d_%dx%d", base, tex.ID, tex.Width, tex.Height)

		path, err := writeTexture(dir, name, tex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing texture %d: %v\n", tex.ID, err)
			continue
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, len(tex.Data))
	}
}

// writeTexture writes a WebP preview when the payload is plain RGBA at
// the declared size, the raw bytes otherwise.
func writeTexture(dir, name string, tex *level.Texture) (string, error) {
	if int(tex.Width)*int(tex.Height)*4 == len(tex.Data) {
		img := &image.NRGBA{
			Pix:    tex.Data,
			Stride: int(tex.Width) * 4,
			Rect:   image.Rect(0, 0, int(tex.Width), int(tex.Height)),
		}

		path := filepath.Join(dir, name+".webp")
		f, err := os.Create(path)
		if err != nil {
			return "", err
		}
		if err := nativewebp.Encode(f, img, nil); err != nil {
			f.Close()
			return "", err
		}
		return path, f.Close()
	}

	path := filepath.Join(dir, name+".bin")
	if err := os.WriteFile(path, tex.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func cmdConsolidate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("consolidate", flag.ExitOnError)
	codecName := fs.String("codec", cfg.Export.Codec, "Compression for the saved level")
	output := fs.String("o", "", "Write the updated level here instead of in place")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mobyswap consolidate <level.lvz>")
		os.Exit(1)
	}

	codec := parseCodec(*codecName)
	lvl := loadLevel(fs.Arg(0))

	before := len(lvl.PVarTable)
	lvl.ConsolidatePVars()

	outPath := *output
	if outPath == "" {
		outPath = fs.Arg(0)
	}
	if err := mobx.SaveLevel(lvl, outPath, codec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consolidated pvars in %s: %d blocks (was %d)\n", outPath, len(lvl.PVarTable), before)
}
