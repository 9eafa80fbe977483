package scenario

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Encode writes the document in the flat scenario format understood by the
// offline tester: a comment header naming the output, the MAP line, the
// tile rows, then the AGENTS block. Bomb counts are parsed from the logs
// but deliberately not written.
func Encode(w io.Writer, doc *Document, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Real captured scenario: %s\n", name)
	fmt.Fprintf(bw, "MAP %d %d\n", doc.Width, doc.Height)

	for _, row := range doc.Grid {
		cells := make([]string, len(row))
		for x, tile := range row {
			cells[x] = strconv.Itoa(tile)
		}
		fmt.Fprintln(bw, strings.Join(cells, " "))
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "AGENTS")

	for _, a := range doc.Agents {
		fmt.Fprintf(bw, "%d %d %d %d\n", a.ID, a.Player, a.X, a.Y)
	}

	return bw.Flush()
}

// WriteFile encodes the document into path, using the file's base name in
// the header comment.
func WriteFile(fs afero.Fs, path string, doc *Document) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create scenario file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, doc, filepath.Base(path)); err != nil {
		return fmt.Errorf("encode scenario: %s: %w", path, err)
	}

	return nil
}
