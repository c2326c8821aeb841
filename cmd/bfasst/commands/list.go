package commands

import (
	"fmt"

	"github.com/bfasst/bfasst/internal/filter"
	"github.com/bfasst/bfasst/internal/flow"
	"github.com/bfasst/bfasst/internal/listing"
	"github.com/bfasst/bfasst/internal/printer"
	"github.com/bfasst/bfasst/internal/runner"
	"github.com/spf13/cobra"
)

var (
	listSel          selection
	listOutputFormat string
	listMatch        string
	listTop          string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the designs an experiment resolves to",
	Long: `Resolve an experiment (or a single design) and print each design with
its top module, flow, source counts and output directory. Nothing is written.

Output Formats:
  default - Human-readable table
  jsonl   - Line-delimited JSON, one design per line

Filters:
  --match  - Design name glob ("byu/*"); * does not cross directories
  --top    - Top module (exact match)

Examples:
  bfasst list --descriptor experiments/example.yaml
  bfasst list -d example.yaml --match "example/*" -o jsonl`,
	RunE: runList,
}

func init() {
	listSel.bind(listCmd)
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Only show designs whose name matches this glob")
	listCmd.Flags().StringVar(&listTop, "top", "", "Only show designs with this top module")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listOutputFormat != "default" && listOutputFormat != "jsonl" {
		return printer.Error(
			"Invalid output format",
			fmt.Sprintf("Unknown output format: %s", listOutputFormat),
			[]string{"Use --output=default or --output=jsonl"},
		)
	}

	criteria := &filter.Criteria{NameGlob: listMatch, Top: listTop}
	if err := criteria.Validate(); err != nil {
		return printer.Error(
			"Invalid --match pattern",
			fmt.Sprintf("%q: %v", listMatch, err),
			[]string{"Use a path.Match glob such as \"byu/*\""},
		)
	}

	result, err := runner.Resolve(listSel.options())
	if err != nil {
		return report(err)
	}

	var flows []flow.Flow
	for _, f := range result.Experiment.Flows {
		if criteria.Matches(f.Design()) {
			flows = append(flows, f)
		}
	}
	entries := listing.Entries(flows)

	out := cmd.OutOrStdout()
	if listOutputFormat == "jsonl" {
		return listing.FormatJSONL(out, entries)
	}

	listing.FormatTable(out, entries, result.Paths.Root)
	if criteria.HasFilters() {
		printer.Info("(%d of %d designs match the filters)\n", len(entries), len(result.Experiment.Flows))
	}
	warnPostRun(result)
	return nil
}
