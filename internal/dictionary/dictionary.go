package dictionary

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords string

// Default returns the word list shipped with the binary.
func Default() []string {
	words, _ := Parse(strings.NewReader(embeddedWords))

	return words
}

// ReadFile reads a word list from path.
func ReadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	words, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}

	return words, nil
}

// Parse returns one lowercased entry per non-empty line. Comment lines start
// with '#'. Entries are not filtered by length here; the word bank does that.
func Parse(reader io.Reader) ([]string, error) {
	var words []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words = append(words, strings.ToLower(line))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return words, nil
}

// Load reads path, or the embedded list when path is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}

	return ReadFile(path)
}
