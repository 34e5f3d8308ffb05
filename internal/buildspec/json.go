package buildspec

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// loadJSON builds a Document from a JSON spec. Optional top-level fields
// degrade to defaults when absent or the wrong scalar shape; the delays and
// frames lists are structural and their absence fails the load.
func loadJSON(path, baseDir string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec %s: %w", path, err)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse spec %s: %w", path, err)
	}

	doc := &Document{}
	if raw, ok := root["name"]; ok {
		if name, ok := scalarString(raw); ok {
			doc.name = name
		}
	}
	if raw, ok := root["loops"]; ok {
		if loops, ok := scalarUint(raw); ok {
			doc.loops = loops
		}
	}
	if raw, ok := root["skip_first"]; ok {
		if skip, ok := scalarBool(raw); ok {
			doc.skipFirst = skip
		}
	}

	defaultDelay := DefaultDelay()
	if raw, ok := root["default_delay"]; ok {
		if token, ok := scalarString(raw); ok {
			defaultDelay = ParseDelay(token)
		}
	}

	delays, err := decodeDelayList(root)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}

	decls, err := decodeFrameList(root)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}

	doc.frames, err = assembleFrames(decls, delays, defaultDelay, baseDir)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}
	return doc, nil
}

func decodeDelayList(root map[string]json.RawMessage) ([]Delay, error) {
	raw, ok := root["delays"]
	if !ok {
		return nil, ErrMissingDelays
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("delays must be a list: %w", err)
	}
	delays := make([]Delay, 0, len(entries))
	for _, entry := range entries {
		token, _ := scalarString(entry)
		delays = append(delays, ParseDelay(token))
	}
	return delays, nil
}

func decodeFrameList(root map[string]json.RawMessage) ([]frameDecl, error) {
	raw, ok := root["frames"]
	if !ok {
		return nil, ErrMissingFrames
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("frames must be a list: %w", err)
	}

	decls := make([]frameDecl, 0, len(entries))
	for index, entry := range entries {
		if pathSpec, ok := scalarString(entry); ok {
			decls = append(decls, frameDecl{pathSpec: pathSpec})
			continue
		}

		var mapping map[string]json.RawMessage
		if err := json.Unmarshal(entry, &mapping); err != nil {
			return nil, fmt.Errorf("frame %d: must be a path or a {path: delay} pair: %w", index, err)
		}
		if len(mapping) != 1 {
			return nil, fmt.Errorf("frame %d: must pair exactly one path with one delay", index)
		}
		for pathSpec, rawDelay := range mapping {
			token, _ := scalarString(rawDelay)
			delay := ParseDelay(token)
			decls = append(decls, frameDecl{pathSpec: pathSpec, inline: &delay})
		}
	}
	return decls, nil
}

// scalarString extracts a JSON scalar as token text. Strings decode directly;
// numbers and booleans contribute their literal spelling, mirroring how a
// spec may write a bare numerator without quotes.
func scalarString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

func scalarUint(raw json.RawMessage) (uint, bool) {
	var u uint
	if err := json.Unmarshal(raw, &u); err == nil {
		return u, true
	}
	if token, ok := scalarString(raw); ok {
		if parsed, err := strconv.ParseUint(token, 10, strconv.IntSize); err == nil {
			return uint(parsed), true
		}
	}
	return 0, false
}

func scalarBool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	token, ok := scalarString(raw)
	if !ok {
		return false, false
	}
	switch token {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}
