package catalog

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/litescript/grb-shader/internal/astro"
)

// MissingValue marks an unknown numeric field in the catalog file.
const MissingValue = -99.99

// catalogColumns is the fixed row layout: name skycoord radius ratio distance.
const catalogColumns = 5

//go:embed data/lv_catalog.txt
var bundledCatalog []byte

// LoadDefault parses the catalog bundled with the binary.
func LoadDefault() (*LocalVolume, error) {
	if len(bundledCatalog) == 0 {
		return nil, fmt.Errorf("%w: bundled catalog is empty", ErrResource)
	}
	return Parse(bytes.NewReader(bundledCatalog))
}

// LoadFile parses a catalog file from disk.
func LoadFile(path string) (*LocalVolume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}
	defer f.Close()

	v, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}

// Parse reads a whitespace-delimited catalog with five columns per row:
// name, packed sky coordinate, radius (arcmin), axis ratio and distance (Mpc).
// The value -99.99 in a numeric column is read as NaN. Blank lines and lines
// starting with '#' are skipped. Any bad row aborts the whole load.
func Parse(r io.Reader) (*LocalVolume, error) {
	v := New()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		g, err := parseRow(line)
		if err != nil {
			return nil, NewRowError(lineNo, line, err)
		}
		v.add(g)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read catalog: %w", ErrResource, err)
	}

	return v, nil
}

func parseRow(line string) (*Galaxy, error) {
	fields := strings.Fields(line)
	if len(fields) != catalogColumns {
		return nil, fmt.Errorf("expected %d columns, got %d", catalogColumns, len(fields))
	}

	name, token := fields[0], fields[1]

	radius, err := parseNumeric(fields[2])
	if err != nil {
		return nil, fmt.Errorf("radius: %w", err)
	}
	ratio, err := parseNumeric(fields[3])
	if err != nil {
		return nil, fmt.Errorf("ratio: %w", err)
	}
	distance, err := parseNumeric(fields[4])
	if err != nil {
		return nil, fmt.Errorf("distance: %w", err)
	}

	center, err := astro.ParsePackedCoord(token, distance)
	if err != nil {
		return nil, err
	}

	return NewGalaxy(name, distance, center, radius, ratio), nil
}

// parseNumeric parses a float column, mapping the missing-value sentinel to NaN.
func parseNumeric(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f == MissingValue {
		return math.NaN(), nil
	}
	return f, nil
}
