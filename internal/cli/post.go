package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hopperhttp "github.com/hopperhttp/hopper/http"
	"github.com/hopperhttp/hopper/internal/output"
)

var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Make a POST request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		headers, _ := cmd.Flags().GetStringArray("header")
		verbose, _ := cmd.Flags().GetBool("verbose")
		noColor, _ := cmd.Flags().GetBool("no-color")
		data, _ := cmd.Flags().GetString("data")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, err := clientFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		req := hopperhttp.NewRequest("POST", normalizeURL(args[0])).
			WithHeaders(parseHeaderFlags(headers))
		if data != "" {
			req.WithBodyString(data)
			if asJSON {
				req.WithHeader("Content-Type", "application/json")
			}
		}

		formatter := output.NewFormatter(verbose, noColor)
		fmt.Print(formatter.FormatRequest(req))

		resp, err := client.Send(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(formatter.FormatResponse(resp))
	},
}

func init() {
	addClientFlags(postCmd)
	postCmd.Flags().StringP("data", "d", "", "Request body")
	postCmd.Flags().Bool("json", false, "Send the body as application/json")
}
