package supplychain

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/procurea/scdra/providers/tool"
)

type searchSOPInput struct {
	Query string `json:"query" jsonschema:"description=Disruption scenario or procedure to look up such as supplier failure or logistics delay,minLength=1,required"`
}

type searchSOPOutput struct {
	Query    string `json:"query"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// generalSOPGuidance is returned when no specific procedure matches the query.
const generalSOPGuidance = "## General Disruption Guidance\n\n" +
	"No specific procedure matches this scenario. Apply the standing rules:\n\n" +
	"1. Assess scope: affected suppliers, SKUs and open purchase orders.\n" +
	"2. Quantify financial exposure before committing to a response.\n" +
	"3. Prefer pre-qualified backup suppliers over new sourcing.\n" +
	"4. Escalate to VP Supply Chain when exposure exceeds $100K.\n" +
	"5. Document all decisions and notify stakeholders of timeline changes."

// SearchSOPWiki retrieves the standard operating procedure for a disruption
// scenario. Wiki pages are stored as HTML and converted to markdown on the
// way out so the model sees clean numbered steps.
func (ts *Toolset) SearchSOPWiki() tool.GenericTool {
	return tool.New("search_sop_wiki",
		func(_ context.Context, in searchSOPInput) (searchSOPOutput, error) {
			page, ok := ts.matchSOPPage(in.Query)
			if !ok {
				return searchSOPOutput{
					Query:    in.Query,
					Title:    "General Disruption Guidance",
					Markdown: generalSOPGuidance,
				}, nil
			}

			markdown, err := htmltomarkdown.ConvertString(page.HTML)
			if err != nil {
				return searchSOPOutput{}, fmt.Errorf("convert procedure page %q: %w", page.Title, err)
			}

			return searchSOPOutput{
				Query:    in.Query,
				Title:    page.Title,
				Markdown: strings.TrimSpace(markdown),
			}, nil
		},
		tool.WithDescription("Search the standard operating procedure wiki for the response protocol matching a disruption scenario. Returns the procedure as markdown."),
	)
}

// matchSOPPage picks the page whose type keywords appear in the query. The
// underscore form ("supplier_failure") and the spaced words both match.
func (ts *Toolset) matchSOPPage(query string) (SOPPage, bool) {
	q := strings.ToLower(query)
	for _, page := range ts.data.SOPPages {
		if strings.Contains(q, page.Type) {
			return page, true
		}
		words := strings.Split(page.Type, "_")
		all := true
		for _, w := range words {
			if !strings.Contains(q, w) {
				all = false
				break
			}
		}
		if all {
			return page, true
		}
	}
	return SOPPage{}, false
}
