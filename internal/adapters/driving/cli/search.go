package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provo-labs/provo-cli/internal/core/domain"
)

var (
	searchLimit   int
	searchProject string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search captured fragments",
	Long: `Runs a ranked free-text search over captured fragments. Every query
token must appear somewhere in a fragment's content, project or topics;
results are ordered by the fraction of tokens matched, ties broken by
capture time, newest first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchProject, "project", "p", "", "restrict to a project")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{Limit: searchLimit}
	if searchProject != "" {
		opts.Project = &searchProject
	}

	response, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, response)
	}
	return outputSearchList(cmd, response)
}

// searchResultJSON is the stable --json shape for a single hit.
type searchResultJSON struct {
	ID         string   `json:"id"`
	Score      float64  `json:"score"`
	Content    string   `json:"content"`
	Project    *string  `json:"project,omitempty"`
	Topics     []string `json:"topics,omitempty"`
	SourceType string   `json:"source_type"`
	CapturedAt string   `json:"captured_at"`
}

func outputSearchJSON(cmd *cobra.Command, response *domain.SearchResponse) error {
	out := make([]searchResultJSON, 0, len(response.Results))
	for _, r := range response.Results {
		out = append(out, searchResultJSON{
			ID:         r.Fragment.ID,
			Score:      r.Score,
			Content:    r.Fragment.Content,
			Project:    r.Fragment.Project,
			Topics:     r.Fragment.Topics,
			SourceType: r.Fragment.SourceType.String(),
			CapturedAt: r.Fragment.CapturedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchList(cmd *cobra.Command, response *domain.SearchResponse) error {
	if len(response.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range response.Results {
		cmd.Printf("  [%d] %s  %s  (%.2f)\n", i+1, shortID(r.Fragment.ID), fmtTime(r.Fragment.CapturedAt), r.Score)
		cmd.Printf("      %s\n", highlightedSnippet(r.Fragment.Content, response.Query))
		if r.Fragment.Project != nil && *r.Fragment.Project != "" {
			cmd.Printf("      project: %s\n", *r.Fragment.Project)
		}
		cmd.Println()
	}
	return nil
}

// highlightedSnippet truncates the content and wraps matched query
// tokens in brackets so they stand out without relying on terminal
// colour support.
func highlightedSnippet(content, query string) string {
	flat := strings.Join(strings.Fields(content), " ")
	var b strings.Builder
	for _, seg := range domain.Highlight(domain.Truncate(flat, snippetLength), query) {
		if seg.Match {
			b.WriteString("[")
			b.WriteString(seg.Text)
			b.WriteString("]")
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}
