package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/answer-search/pkg/search"
)

func newSearchCmd(st *state) *cobra.Command {
	var filters []string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Send a query to the search backend",
		Long: `Post {query, filters} to the backend and print the results as JSON.

Filter values are parsed as JSON when possible, otherwise kept as strings.

Examples:
  answerctl search "capital of France"
  answerctl search "photosynthesis" --filter type=单选题 --filter limit=5`,
		Args: requireArg("query"),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseFilters(filters)
			if err != nil {
				return err
			}

			results, err := st.searchClient().Search(cmd.Context(), args[0], parsed)
			if err != nil {
				return searchError(err)
			}
			return st.printer(cmd).JSON(results)
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as key=value (repeatable)")
	return cmd
}

func (st *state) searchClient() *search.Client {
	return search.New(
		search.WithBaseURL(st.cfg.SearchBaseURL),
		search.WithTimeout(st.cfg.RequestTimeout),
		search.WithLogger(st.log),
	)
}

// parseFilters turns key=value pairs into search filters.
func parseFilters(pairs []string) (search.Filters, error) {
	out := search.Filters{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &CLIError{
				Summary:    fmt.Sprintf("invalid filter %q", pair),
				Suggestion: "use --filter key=value",
				ExitCode:   ExitUsageError,
			}
		}

		var val any
		if err := json.Unmarshal([]byte(raw), &val); err != nil {
			val = raw
		}
		out[key] = val
	}
	return out, nil
}
