package buildspec

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// XML spec grammar: a single <animation> root whose attributes mirror the
// JSON top-level scalars, a <frames> element holding ordered <frame> entries,
// and an optional <delays> element supplying positional tokens. A delay
// attribute on a <frame> is the inline form and bypasses the positional list.
//
//	<animation name="loading" loops="0" skip_first="false" default_delay="100/1000">
//	  <delays>
//	    <delay>1/10</delay>
//	  </delays>
//	  <frames>
//	    <frame delay="3/30">img_*.png</frame>
//	    <frame>cover.png</frame>
//	  </frames>
//	</animation>
type xmlAnimation struct {
	XMLName      xml.Name   `xml:"animation"`
	Name         string     `xml:"name,attr"`
	Loops        string     `xml:"loops,attr"`
	SkipFirst    string     `xml:"skip_first,attr"`
	DefaultDelay string     `xml:"default_delay,attr"`
	Delays       *xmlDelays `xml:"delays"`
	Frames       *xmlFrames `xml:"frames"`
}

type xmlDelays struct {
	Tokens []string `xml:"delay"`
}

type xmlFrames struct {
	Entries []xmlFrame `xml:"frame"`
}

type xmlFrame struct {
	Delay *string `xml:"delay,attr"`
	Path  string  `xml:",chardata"`
}

// loadXML builds a Document from an XML spec. Unlike JSON, the delays element
// is optional because inline delays ride on frame attributes; the frames
// element remains structural and its absence fails the load.
func loadXML(path, baseDir string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec %s: %w", path, err)
	}

	var root xmlAnimation
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse spec %s: %w", path, err)
	}
	if root.Frames == nil {
		return nil, fmt.Errorf("spec %s: %w", path, ErrMissingFrames)
	}

	doc := &Document{name: root.Name}
	if loops, err := strconv.ParseUint(root.Loops, 10, strconv.IntSize); err == nil {
		doc.loops = uint(loops)
	}
	switch root.SkipFirst {
	case "true", "1":
		doc.skipFirst = true
	}

	defaultDelay := DefaultDelay()
	if root.DefaultDelay != "" {
		defaultDelay = ParseDelay(root.DefaultDelay)
	}

	var delays []Delay
	if root.Delays != nil {
		delays = make([]Delay, 0, len(root.Delays.Tokens))
		for _, token := range root.Delays.Tokens {
			delays = append(delays, ParseDelay(strings.TrimSpace(token)))
		}
	}

	decls := make([]frameDecl, 0, len(root.Frames.Entries))
	for _, entry := range root.Frames.Entries {
		decl := frameDecl{pathSpec: strings.TrimSpace(entry.Path)}
		if entry.Delay != nil {
			delay := ParseDelay(*entry.Delay)
			decl.inline = &delay
		}
		decls = append(decls, decl)
	}

	doc.frames, err = assembleFrames(decls, delays, defaultDelay, baseDir)
	if err != nil {
		return nil, fmt.Errorf("spec %s: %w", path, err)
	}
	return doc, nil
}
