package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/mindmap/pkg/mindmap"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

const stdio = "-"

// readMap decodes a mind map from path, or from stdin when path is "-".
func readMap(path string) (mindmap.MindMap, error) {
	if path == stdio {
		return mindmap.Decode(os.Stdin)
	}
	m, err := mindmap.ReadFile(path)
	if err != nil {
		return mindmap.MindMap{}, fmt.Errorf("load map %s: %w", path, err)
	}
	return m, nil
}

// readText reads path, or stdin when path is "-".
func readText(path string) (string, error) {
	var data []byte
	var err error
	if path == stdio {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// artifactExt maps a format to its file extension. JSON artifacts are
// layouts, and naming them .layout.json keeps them from overwriting the
// input map.
func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return "layout.json"
	}
	return format
}

// writeArtifacts writes one file per format. A single format with an
// explicit output goes exactly there; otherwise files are named
// <base>.<ext>. It returns the written paths in format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		if err := writeOutput(p.output, p.artifacts[p.formats[0]]); err != nil {
			return nil, err
		}
		return []string{p.output}, nil
	}

	input := p.input
	if input == stdio {
		input = appName
	}
	base := basePath(p.output, input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + "." + artifactExt(format)
		if err := writeOutput(path, p.artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
