// Package schema generates the published JSON Schemas of the agent
// configuration, the UI block envelope and every component data variant.
package schema

//go:generate go run ../../cmd/schemagen -out ../../spec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/config"
	"github.com/RedHat-UX/next-gen-ui-agent-sub001/internal/domain"
)

// Draft is the dialect declared by every generated document.
const Draft = "http://json-schema.org/draft-07/schema#"

// Document is one generated schema and the file it is published as.
type Document struct {
	Name   string
	Title  string
	Schema *jsonschema.Schema
}

// FileName is the document's path below the spec directory.
func (d Document) FileName() string {
	return d.Name + ".schema.json"
}

type source struct {
	name  string
	title string
	gen   func() (*jsonschema.Schema, error)
}

func of[T any](name, title string) source {
	return source{name: name, title: title, gen: func() (*jsonschema.Schema, error) { return jsonschema.For[T](nil) }}
}

var sources = []source{
	of[config.AgentConfig]("agent_config", "AgentConfig"),
	of[domain.UIBlock]("ui_block", "UIBlock"),
	of[domain.ComponentDataOneCard]("component_data_one_card", "ComponentDataOneCard"),
	of[domain.ComponentDataImage]("component_data_image", "ComponentDataImage"),
	of[domain.ComponentDataVideo]("component_data_video_player", "ComponentDataVideoPlayer"),
	of[domain.ComponentDataAudio]("component_data_audio_player", "ComponentDataAudioPlayer"),
	of[domain.ComponentDataSetOfCards]("component_data_set_of_cards", "ComponentDataSetOfCards"),
	of[domain.ComponentDataTable]("component_data_table", "ComponentDataTable"),
	of[domain.ComponentDataChart]("component_data_chart", "ComponentDataChart"),
	of[domain.ComponentDataHandBuilt]("component_data_hand_build_component", "ComponentDataHandBuildComponent"),
}

// Documents generates every published schema. Only the root carries a
// title; nested property schemas stay untitled.
func Documents() ([]Document, error) {
	docs := make([]Document, 0, len(sources))
	for _, src := range sources {
		s, err := src.gen()
		if err != nil {
			return nil, fmt.Errorf("schema: %s: %w", src.name, err)
		}
		untitle(s)
		s.Schema = Draft
		s.Title = src.title
		docs = append(docs, Document{Name: src.name, Title: src.title, Schema: s})
	}
	return docs, nil
}

func untitle(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	s.Title = ""
	for _, p := range s.Properties {
		untitle(p)
	}
	for _, d := range s.Defs {
		untitle(d)
	}
	untitle(s.Items)
	untitle(s.AdditionalProperties)
}

// Marshal renders a schema the way it is checked in: two-space indent and a
// trailing newline.
func Marshal(s *jsonschema.Schema) ([]byte, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: marshal: %w", err)
	}
	return append(b, '\n'), nil
}

// Write generates every document into dir.
func Write(dir string) ([]string, error) {
	docs, err := Documents()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("schema: create %s: %w", dir, err)
	}
	written := make([]string, 0, len(docs))
	for _, d := range docs {
		b, err := Marshal(d.Schema)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, d.FileName())
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return nil, fmt.Errorf("schema: write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
