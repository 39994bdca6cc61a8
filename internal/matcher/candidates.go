package matcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Candidates is the caller-selected set of bulk images to compare against,
// reduced to an ordered name-to-id mapping. A duplicate name keeps its
// first-seen position but takes the last id.
type Candidates struct {
	names []string
	ids   map[string]any
}

// ParseCandidates parses the json_data form field: a JSON array of objects,
// each carrying a string "name" and an "id" (string or number). Numeric ids
// are kept as json.Number so they echo back to the caller unchanged.
func ParseCandidates(data string) (*Candidates, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var entries []map[string]any
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing candidate list: %w", err)
	}
	if dec.More() {
		return nil, errors.New("parsing candidate list: trailing data after JSON array")
	}

	c := &Candidates{ids: make(map[string]any, len(entries))}
	for _, entry := range entries {
		nameVal, ok := entry["name"]
		if !ok {
			return nil, errors.New("candidate entry missing 'name' field")
		}
		name, ok := nameVal.(string)
		if !ok {
			return nil, errors.New("candidate 'name' field must be a string")
		}
		id, ok := entry["id"]
		if !ok {
			return nil, errors.New("candidate entry missing 'id' field")
		}
		if _, seen := c.ids[name]; !seen {
			c.names = append(c.names, name)
		}
		c.ids[name] = id
	}
	return c, nil
}

// CandidatesFromNames builds a candidate list where each file is its own id.
// Used by the CLI, which has no caller-supplied identifiers.
func CandidatesFromNames(names []string) *Candidates {
	c := &Candidates{ids: make(map[string]any, len(names))}
	for _, name := range names {
		if _, seen := c.ids[name]; !seen {
			c.names = append(c.names, name)
		}
		c.ids[name] = name
	}
	return c
}

// Len returns the number of distinct candidate names.
func (c *Candidates) Len() int {
	return len(c.names)
}

// Names returns the candidate file names in mapping order.
func (c *Candidates) Names() []string {
	return c.names
}

// ID returns the identifier associated with a candidate name.
func (c *Candidates) ID(name string) any {
	return c.ids[name]
}
