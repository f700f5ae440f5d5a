package manifest

import (
	"bufio"
	"fmt"
	"io"
)

const maxLineBytes = 1 << 20

// Parse reads every manifest line from r. It stops at the first malformed
// line and returns its *ParseError without any records.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []Record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		record, err := ParseLine(scanner.Text(), lineNum)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest line %d: %w", lineNum+1, err)
	}
	return records, nil
}
