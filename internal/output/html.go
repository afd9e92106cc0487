// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/davetashner/launchdash/internal/chart"
	"github.com/davetashner/launchdash/internal/controller"
	"github.com/davetashner/launchdash/internal/selection"
)

// DefaultHeading is the dashboard title.
const DefaultHeading = "SpaceX Launch Records Dashboard"

// SitePlaceholder is the dropdown prompt.
const SitePlaceholder = "Select a Launch Site here"

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// HTMLFormatter writes a snapshot as a self-contained HTML dashboard. A live
// dashboard posts control changes back to the server's selection endpoints;
// a static one renders the snapshot with the controls disabled.
type HTMLFormatter struct {
	// Heading is the page title. Empty means DefaultHeading.
	Heading string

	// Live enables the interactive controls.
	Live bool

	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new static HTMLFormatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// NewLiveHTMLFormatter returns an HTMLFormatter for the served dashboard.
func NewLiveHTMLFormatter(heading string) *HTMLFormatter {
	return &HTMLFormatter{Heading: heading, Live: true}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

// Format writes snap as an HTML dashboard to w.
func (h *HTMLFormatter) Format(snap controller.Snapshot, w io.Writer) error {
	if snap.Revision == 0 {
		return h.writeEmpty(w)
	}

	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
		}).Parse(htmlTemplate))
	})

	now := time.Now()
	if h.nowFunc != nil {
		now = h.nowFunc()
	}

	if err := htmlTmpl.Execute(w, h.buildHTMLData(snap, now)); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// htmlData holds all template data for the HTML dashboard.
type htmlData struct {
	Heading     string
	Placeholder string
	GeneratedAt string
	Live        bool
	Revision    uint64
	Options     []siteOption
	Domain      selection.Domain
	Selection   selection.State
	Proportion  chart.Spec
	Correlation chart.Spec
	State       map[string]any
}

type siteOption struct {
	Value    string
	Label    string
	Selected bool
}

func (h *HTMLFormatter) buildHTMLData(snap controller.Snapshot, now time.Time) htmlData {
	heading := h.Heading
	if heading == "" {
		heading = DefaultHeading
	}
	return htmlData{
		Heading:     heading,
		Placeholder: SitePlaceholder,
		GeneratedAt: now.UTC().Format("2006-01-02 15:04 UTC"),
		Live:        h.Live,
		Revision:    snap.Revision,
		Options:     buildSiteOptions(snap.Domain.Sites, snap.Selection.Site),
		Domain:      snap.Domain,
		Selection:   snap.Selection,
		Proportion:  snap.Proportion,
		Correlation: snap.Correlation,
		State: map[string]any{
			"live":        h.Live,
			"revision":    snap.Revision,
			"selection":   snap.Selection,
			"domain":      snap.Domain,
			"proportion":  snap.Proportion,
			"correlation": snap.Correlation,
		},
	}
}

// buildSiteOptions lists "All Sites" first, then every site in dataset order.
func buildSiteOptions(sites []string, selected string) []siteOption {
	opts := make([]siteOption, 0, len(sites)+1)
	opts = append(opts, siteOption{
		Value:    selection.AllSites,
		Label:    selection.AllSitesLabel,
		Selected: selected == selection.AllSites,
	})
	for _, s := range sites {
		opts = append(opts, siteOption{Value: s, Label: s, Selected: selected == s})
	}
	return opts
}

func (h *HTMLFormatter) writeEmpty(w io.Writer) error {
	const emptyHTML = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>Launch Dashboard</title>
<style>body{font-family:sans-serif;display:flex;justify-content:center;align-items:center;height:100vh;color:#6c757d;}</style>
</head><body><p>No launch records loaded.</p></body></html>`
	if _, err := io.WriteString(w, emptyHTML); err != nil {
		return fmt.Errorf("write empty html: %w", err)
	}
	return nil
}
