package cli

import (
	"github.com/spf13/cobra"

	"github.com/samvad-hq/answer-search/internal/answers"
)

func newImportCmd(st *state) *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:   "import <answers.csv>",
		Short: "Validate a CSV answer file",
		Long: `Parse a CSV answer file the way the answer server loads it and print the item count.

Columns: 类型/type, 题目/question, 选项/options, 答案/answer.`,
		Args: requireArg("csv file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := answers.LoadCSVFile(args[0], answers.ImportOptions{
				Encoding:        st.cfg.AnswersEncoding,
				OptionSeparator: st.cfg.OptionSeparator,
				AnswerSeparator: st.cfg.AnswerSeparator,
			})
			if err != nil {
				return &CLIError{Summary: "import failed", Detail: err.Error(), ExitCode: ExitGeneral}
			}

			p := st.printer(cmd)
			p.Line("imported %d items from %s", len(items), args[0])
			if preview > 0 {
				if preview > len(items) {
					preview = len(items)
				}
				return p.JSON(items[:preview])
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("encoding", "utf-8", "file encoding (utf-8, gbk, gb2312)")
	flags.String("option-sep", "|", `option separator (\n, \t, \r, \s allowed)`)
	flags.String("answer-sep", "|", "answer separator")
	flags.IntVar(&preview, "preview", 0, "print the first N parsed items")

	_ = st.v.BindPFlag("answers_encoding", flags.Lookup("encoding"))
	_ = st.v.BindPFlag("option_separator", flags.Lookup("option-sep"))
	_ = st.v.BindPFlag("answer_separator", flags.Lookup("answer-sep"))
	return cmd
}
