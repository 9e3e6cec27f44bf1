package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/answer-search/pkg/httpclient"
	"github.com/samvad-hq/answer-search/pkg/ocr"
)

func newOCRCmd(st *state) *cobra.Command {
	var health bool

	cmd := &cobra.Command{
		Use:   "ocr [image.png]",
		Short: "Recognise text in an image or check the OCR service",
		Args: func(cmd *cobra.Command, args []string) error {
			if health {
				return cobra.NoArgs(cmd, args)
			}
			return requireArg("image path")(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ocr.New(st.cfg.OCRBaseURL, ocr.WithHTTPClient(httpclient.NewRestyClient(st.cfg.RequestTimeout)))
			p := st.printer(cmd)

			if health {
				err := client.CheckHealth(cmd.Context())
				detail := ""
				if err != nil {
					detail = err.Error()
				}
				p.Status(err == nil, "ocr service", detail)
				if err != nil {
					return &CLIError{Summary: "ocr service unhealthy", Detail: err.Error(), ExitCode: ExitGeneral}
				}
				return nil
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return &CLIError{Summary: fmt.Sprintf("cannot read %s", args[0]), Detail: err.Error(), ExitCode: ExitUsageError}
			}
			text, err := client.RecognizeText(cmd.Context(), image)
			if err != nil {
				return &CLIError{Summary: "ocr failed", Detail: err.Error(), ExitCode: ExitGeneral}
			}
			p.Line("%s", text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&health, "health", false, "only check the service health endpoint")
	return cmd
}
