// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen renders the markdown, man and tldr pages for contractdiff
// from docs/templates/contractdiff.yaml.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

type Manifest struct {
	Pages  []Page `yaml:"pages"`
	Common Common `yaml:"common"`
}

type Common struct {
	Flags []Flag `yaml:"flags"`
}

// Page is one generated document. The root page has ID "contractdiff".
type Page struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
	More        string `yaml:"more,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Page
	Date    string
	Version string
	IDUpper string
}

type Output struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(docs string) error {
	data, err := os.ReadFile(filepath.Join(docs, "templates", "contractdiff.yaml"))
	if err != nil {
		return err
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	outputs := []Output{
		{Template: "contractdiff.md.tmpl", Folder: "commands", Suffix: ".md"},
		{Template: "contractdiff.man.tmpl", Folder: filepath.Join("man", "share", "man1"), Suffix: ".1"},
		{Template: "contractdiff.tldr.tmpl", Folder: "tldr", Suffix: ".md"},
	}

	version := getVersion()
	date := time.Now().Format("January 2, 2006")

	for _, page := range manifest.Pages {
		page.Flags = mergeFlags(manifest.Common.Flags, page.Flags)

		data := TemplateData{
			Page:    page,
			Date:    date,
			Version: version,
			IDUpper: strings.ToUpper(page.ID),
		}

		for _, o := range outputs {
			name := o.Prefix + page.ID + o.Suffix
			if page.ID != "contractdiff" && o.Folder != "commands" {
				name = "contractdiff-" + name
			}
			if err := render(filepath.Join(docs, "templates", o.Template),
				filepath.Join(docs, o.Folder), name, data); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeFlags returns the common flags followed by the page flags, sorted by
// ID. A page flag replaces a common flag with the same ID.
func mergeFlags(common, page []Flag) []Flag {
	merged := make([]Flag, 0, len(common)+len(page))
	for _, f := range common {
		if !slices.ContainsFunc(page, func(p Flag) bool { return p.ID == f.ID }) {
			merged = append(merged, f)
		}
	}
	merged = append(merged, page...)
	slices.SortFunc(merged, func(a, b Flag) int { return strings.Compare(a.ID, b.ID) })
	return merged
}

func render(tmplPath, folder, name string, data TemplateData) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return err
	}

	path := filepath.Join(folder, name)
	fmt.Println("Generating", path)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
