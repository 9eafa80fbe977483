package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Decode reads a scenario file back into a Document. Comment lines and
// leading blank lines are ignored. Agent lines carry only id/player/x/y,
// the remaining fields get the stock loadout.
func Decode(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)

	doc := &Document{}
	inAgents := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "MAP "):
			if err := decodeMapBlock(scanner, doc, line); err != nil {
				return nil, err
			}
		case line == "AGENTS":
			inAgents = true
		case inAgents:
			agent, err := decodeAgentLine(line)
			if err != nil {
				return nil, err
			}
			doc.Agents = append(doc.Agents, agent)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	if doc.Width == 0 || doc.Height == 0 {
		return nil, fmt.Errorf("scenario has no MAP header")
	}

	return doc, nil
}

func decodeMapBlock(scanner *bufio.Scanner, doc *Document, header string) error {
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return fmt.Errorf("malformed MAP header: %q", header)
	}

	var err error
	doc.Width, err = strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("map width: %q: %w", fields[1], err)
	}
	doc.Height, err = strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("map height: %q: %w", fields[2], err)
	}

	doc.Grid = NewGrid(doc.Width, doc.Height)

	for y := 0; y < doc.Height && scanner.Scan(); y++ {
		cells := strings.Fields(scanner.Text())
		for x := 0; x < doc.Width && x < len(cells); x++ {
			tile, err := strconv.Atoi(cells[x])
			if err != nil {
				return fmt.Errorf("map row %d: %q: %w", y, cells[x], err)
			}
			doc.Grid.Set(x, y, tile)
		}
	}

	return nil
}

func decodeAgentLine(line string) (Agent, error) {
	const agentFields = 4

	fields := strings.Fields(line)
	if len(fields) < agentFields {
		return Agent{}, fmt.Errorf("malformed agent line: %q", line)
	}

	vals := make([]int, agentFields)
	for i := 0; i < agentFields; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Agent{}, fmt.Errorf("agent line: %q: %w", fields[i], err)
		}
		vals[i] = v
	}

	return Agent{
		ID:          vals[0],
		Player:      vals[1],
		X:           vals[2],
		Y:           vals[3],
		Cooldown:    0,
		SplashBombs: DefaultSplashBombs,
	}, nil
}

// ReadFile decodes the scenario stored at path.
func ReadFile(fs afero.Fs, path string) (*Document, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode scenario: %s: %w", path, err)
	}

	return doc, nil
}
