package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/MihaiLupoiu/scenex/scenario"
)

// Markers the referee wrapper prefixes to the lines worth keeping. All
// other log noise is ignored.
//
// CAPTURED INPUT: 20 10
// CAPTURED INPUT: 0 0 0 1 0 0 2 0 0 ...
// CAPTURED TURN 1 AGENT INPUT: 1 3 2 0 2 0
// CAPTURED TURN 1 MY_AGENT_COUNT: 2
const (
	markerInput     = `CAPTURED INPUT:`
	markerAgentTurn = `CAPTURED TURN 1 AGENT INPUT:`
	markerMyCount   = `CAPTURED TURN 1 MY_AGENT_COUNT:`

	initCompleteContains = `Game initialization complete`
)

// Smallest map the referee generates. The thresholds double as the
// heuristic that tells the dimensions line apart from other two-number
// lines earlier in the log.
const (
	minMapWidth  = 10
	minMapHeight = 5
)

// A map-data line carries width*3 coordinates, any qualifying row has well
// over this many tokens.
const minMapRowTokens = 11

// ErrDimensionsNotFound reports that no line satisfied the map-dimensions
// heuristic; the capture yields no scenario at all.
var ErrDimensionsNotFound = errors.New("map dimensions not found")

var numberRe = regexp.MustCompile(`^[0-9]+$`)

// DimensionsLine is the accepted width/height line and where it was found.
type DimensionsLine struct {
	Width  int
	Height int
	Index  int
}

// DetectDimensions scans the lines in order for the first marker-tagged
// line whose payload is exactly two numeric tokens of plausible magnitude.
// First match wins, later candidates are never considered.
func DetectDimensions(lines []string) (DimensionsLine, bool) {
	for i, line := range lines {
		payload, ok := markerPayload(line, markerInput)
		if !ok {
			continue
		}
		w, h, ok := dimensionsPayload(payload)
		if !ok {
			continue
		}
		return DimensionsLine{Width: w, Height: h, Index: i}, true
	}
	return DimensionsLine{}, false
}

// Parse extracts a scenario document from one captured referee log.
func Parse(r io.Reader) (*scenario.Document, error) {
	scanner := bufio.NewScanner(r)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}

	return ParseLines(lines)
}

// ParseLines is Parse over an already split capture.
func ParseLines(lines []string) (*scenario.Document, error) {
	dims, ok := DetectDimensions(lines)
	if !ok {
		return nil, ErrDimensionsNotFound
	}

	grid, err := collectGrid(lines, dims)
	if err != nil {
		return nil, fmt.Errorf("map %dx%d: %w", dims.Width, dims.Height, err)
	}

	agents, err := collectAgents(lines, dims.Width)
	if err != nil {
		return nil, fmt.Errorf("turn 1 agents: %w", err)
	}

	return &scenario.Document{
		Width:  dims.Width,
		Height: dims.Height,
		Grid:   grid,
		Agents: agents,
	}, nil
}

// collectGrid re-scans from the top, skips until the dimensions line
// matches again, then takes the following marker-tagged lines with enough
// tokens to be map rows, at most Height of them. Fewer rows leave the rest
// of the grid at TileEmpty.
func collectGrid(lines []string, dims DimensionsLine) (scenario.Grid, error) {
	grid := scenario.NewGrid(dims.Width, dims.Height)

	var (
		rows           int
		pastDimensions bool
	)

	for _, line := range lines {
		if strings.Contains(line, initCompleteContains) {
			continue
		}
		payload, ok := markerPayload(line, markerInput)
		if !ok {
			continue
		}

		fields := strings.Fields(payload)

		if _, _, ok := dimensionsPayload(payload); ok {
			pastDimensions = true
			continue
		}

		if !pastDimensions || len(fields) < minMapRowTokens {
			continue
		}

		if err := fillRow(grid, fields, dims); err != nil {
			return nil, err
		}

		rows++
		if rows >= dims.Height {
			break
		}
	}

	return grid, nil
}

// fillRow parses a flat list of (x, y, tile) triples and stores the
// in-range ones. Triples pointing outside the grid are dropped silently.
func fillRow(grid scenario.Grid, fields []string, dims DimensionsLine) error {
	for i := 0; i+2 < len(fields); i += 3 {
		x, err := strconv.Atoi(fields[i])
		if err != nil {
			return fmt.Errorf("tile x: %q: %w", fields[i], err)
		}
		y, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return fmt.Errorf("tile y: %q: %w", fields[i+1], err)
		}
		tile, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return fmt.Errorf("tile type: %q: %w", fields[i+2], err)
		}

		grid.Set(x, y, tile)
	}
	return nil
}

// collectAgents gathers the turn-1 agent payloads, stopping at the first
// my-agent-count line once agents started appearing. A capture without any
// agent marker yields no agents, which is not an error.
func collectAgents(lines []string, width int) ([]scenario.Agent, error) {
	var (
		agents  []scenario.Agent
		started bool
	)

	for _, line := range lines {
		payload, ok := markerPayload(line, markerAgentTurn)
		if !ok {
			if started && strings.Contains(line, markerMyCount) {
				break
			}
			continue
		}
		started = true

		agent, ok, err := parseAgent(payload, width)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		agents = append(agents, agent)
	}

	return agents, nil
}

// 1 3 2 0 2 0  ->  id x y cooldown bombs wetness
func parseAgent(payload string, width int) (scenario.Agent, bool, error) {
	const (
		fieldID = iota
		fieldX
		fieldY
		fieldCooldown
		fieldBombs
		fieldWetness
		allFields
	)

	fields := strings.Fields(payload)
	if len(fields) < allFields {
		// truncated line, skipped
		return scenario.Agent{}, false, nil
	}
	if len(fields) != allFields {
		return scenario.Agent{}, false, fmt.Errorf("agent line: want %d fields, got %d: %q", allFields, len(fields), payload)
	}

	vals := make([]int, allFields)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return scenario.Agent{}, false, fmt.Errorf("agent field %d: %q: %w", i, f, err)
		}
		vals[i] = v
	}

	return scenario.Agent{
		ID:          vals[fieldID],
		Player:      scenario.PlayerFor(vals[fieldX], width),
		X:           vals[fieldX],
		Y:           vals[fieldY],
		Cooldown:    vals[fieldCooldown],
		SplashBombs: vals[fieldBombs],
		Wetness:     vals[fieldWetness],
	}, true, nil
}

// markerPayload strips the marker prefix from a line, reporting whether
// the line carried it at all.
func markerPayload(line, marker string) (string, bool) {
	split := strings.SplitN(line, marker, 2)
	if len(split) != 2 {
		return "", false
	}
	return strings.TrimSpace(split[1]), true
}

// dimensionsPayload applies the dimensions heuristic to a stripped
// payload: exactly two purely numeric tokens, both above the minimum map
// size. A 2-tile-wide map would be indistinguishable from a data row, the
// referee never generates one.
func dimensionsPayload(payload string) (w, h int, ok bool) {
	fields := strings.Fields(payload)
	if len(fields) != 2 {
		return 0, 0, false
	}
	if !numberRe.MatchString(fields[0]) || !numberRe.MatchString(fields[1]) {
		return 0, 0, false
	}

	w, _ = strconv.Atoi(fields[0])
	h, _ = strconv.Atoi(fields[1])

	if w < minMapWidth || h < minMapHeight {
		return 0, 0, false
	}
	return w, h, true
}
