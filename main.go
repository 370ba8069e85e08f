// Command renderer is the CLI entry point:
// `renderer <scene_file.txt> <output.bmp>`. It parses the scene file,
// runs the SPPM photon-pass/eye-pass loop to completion, and writes
// the final tonemapped image as a BMP.
package main

import (
	"fmt"
	"os"

	"github.com/lumenshade/sppm/pkg/core"
	"github.com/lumenshade/sppm/pkg/loaders"
	"github.com/lumenshade/sppm/pkg/renderer"
	"github.com/lumenshade/sppm/pkg/scene"
)

func main() {
	os.Exit(run(os.Args, renderer.NewDefaultLogger()))
}

// run implements the CLI contract against an injectable logger and
// argv, so tests can exercise the argc/parse/render/write path without
// going through os.Exit.
func run(args []string, logger core.Logger) int {
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <scene_file.txt> <output.bmp>\n", args[0])
		return 1
	}

	scenePath := args[1]
	outputPath := args[2]

	sc, stats, err := scene.ParseFile(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	logger.Printf("parsed scene %s: %d lights, %d materials, %d objects\n",
		scenePath, stats.NumLights, stats.NumMaterials, stats.NumObjects)

	config := renderer.DefaultConfig()
	if err := os.MkdirAll(config.PreviewDir, 0755); err != nil {
		logger.Printf("warning: could not create preview directory %s: %v\n", config.PreviewDir, err)
		config.PreviewDir = ""
	}

	r := renderer.NewRenderer(sc, config, logger)
	frame, err := r.Render()
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		return 1
	}

	if err := loaders.SaveBMP(outputPath, sc.Cam().Width(), sc.Cam().Height(), frame); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outputPath, err)
		return 1
	}

	fmt.Printf("wrote %s\n", outputPath)
	return 0
}
