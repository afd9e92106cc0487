package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/launchdash/internal/chart"
	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/pipeline"
	"github.com/davetashner/launchdash/internal/report"
	"github.com/davetashner/launchdash/internal/selection"
)

// ListSitesInput is the input schema for the list_sites tool.
type ListSitesInput struct{}

// ProportionInput is the input schema for the proportion_chart tool.
type ProportionInput struct {
	Site string `json:"site,omitempty" jsonschema:"Launch site, or ALL for every site (default: ALL)"`
}

// CorrelationInput is the input schema for the correlation_chart tool.
type CorrelationInput struct {
	Site        string   `json:"site,omitempty" jsonschema:"Launch site, or ALL for every site (default: ALL)"`
	PayloadLow  *float64 `json:"payload_low,omitempty" jsonschema:"Lower payload mass bound in kg (default: dataset minimum)"`
	PayloadHigh *float64 `json:"payload_high,omitempty" jsonschema:"Upper payload mass bound in kg (default: dataset maximum)"`
}

// SiteSummaryInput is the input schema for the site_summary tool.
type SiteSummaryInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: json or table (default: json)"`
}

// siteListing is the list_sites result.
type siteListing struct {
	Sites  []siteListingEntry `json:"sites"`
	Domain selection.Domain   `json:"domain"`
}

type siteListingEntry struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Launches int    `json:"launches"`
}

// chartResult pairs a chart with the selection that produced it.
type chartResult struct {
	Selection selection.State `json:"selection"`
	Chart     chart.Spec      `json:"chart"`
}

// tools holds the dataset the handlers answer from. Handlers never touch a
// dashboard session, so calls have no side effects.
type tools struct {
	ds       *dataset.Dataset
	domain   selection.Domain
	renderer chart.Renderer
	now      func() time.Time
}

func newTools(ds *dataset.Dataset) *tools {
	return &tools{
		ds:       ds,
		domain:   selection.NewDomain(ds),
		renderer: chart.Renderer{Columns: ds.Mapping()},
		now:      time.Now,
	}
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all dashboard tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_sites",
		Description: "List the launch sites in the dataset (first-seen order, ALL first) and the payload range control bounds.",
		Annotations: readOnly(),
	}, t.handleListSites)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "proportion_chart",
		Description: "Pie chart of launch outcomes (class 0 = failure, 1 = success) for one site or ALL.",
		Annotations: readOnly(),
	}, t.handleProportion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "correlation_chart",
		Description: "Scatter chart of payload mass against outcome, colored by booster version category, for a site and payload range.",
		Annotations: readOnly(),
	}, t.handleCorrelation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "site_summary",
		Description: "Per-site launch counts, success rates, and payload bounds, with an all-sites total.",
		Annotations: readOnly(),
	}, t.handleSiteSummary)
}

func (t *tools) handleListSites(_ context.Context, _ *mcp.CallToolRequest, _ ListSitesInput) (*mcp.CallToolResult, any, error) {
	counts := t.ds.SiteCounts()
	out := siteListing{
		Sites:  []siteListingEntry{{Value: selection.AllSites, Label: selection.AllSitesLabel, Launches: t.ds.Len()}},
		Domain: t.domain,
	}
	for _, site := range t.domain.Sites {
		out.Sites = append(out.Sites, siteListingEntry{Value: site, Label: site, Launches: counts[site]})
	}
	return jsonResult(out)
}

func (t *tools) handleProportion(_ context.Context, _ *mcp.CallToolRequest, input ProportionInput) (*mcp.CallToolResult, any, error) {
	site, err := t.domain.NormalizeSite(input.Site)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (see list_sites)", err)
	}
	rows := pipeline.FilterForProportion(t.ds, site)
	return jsonResult(chartResult{
		Selection: selection.State{Site: site, Payload: t.domain.Default().Payload},
		Chart:     t.renderer.Proportion(site, rows),
	})
}

func (t *tools) handleCorrelation(_ context.Context, _ *mcp.CallToolRequest, input CorrelationInput) (*mcp.CallToolResult, any, error) {
	site, err := t.domain.NormalizeSite(input.Site)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (see list_sites)", err)
	}
	r := t.domain.Default().Payload
	if input.PayloadLow != nil {
		r.Low = *input.PayloadLow
	}
	if input.PayloadHigh != nil {
		r.High = *input.PayloadHigh
	}
	r, err = t.domain.Clamp(r)
	if err != nil {
		return nil, nil, err
	}
	rows := pipeline.FilterForCorrelation(t.ds, site, r)
	return jsonResult(chartResult{
		Selection: selection.State{Site: site, Payload: r},
		Chart:     t.renderer.Correlation(site, rows),
	})
}

func (t *tools) handleSiteSummary(_ context.Context, _ *mcp.CallToolRequest, input SiteSummaryInput) (*mcp.CallToolResult, any, error) {
	summary := report.Build(t.ds, t.now())

	var buf bytes.Buffer
	format := input.Format
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		if err := report.RenderJSON(summary, &buf); err != nil {
			return nil, nil, fmt.Errorf("rendering failed: %w", err)
		}
	case "table":
		if err := report.RenderTable(summary, &buf); err != nil {
			return nil, nil, fmt.Errorf("rendering failed: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported format %q (supported: json, table)", format)
	}

	return textResult(buf.String()), nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding failed: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
