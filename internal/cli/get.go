package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	hopperhttp "github.com/hopperhttp/hopper/http"
	"github.com/hopperhttp/hopper/internal/output"
)

var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Make a GET request to the specified URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		headers, _ := cmd.Flags().GetStringArray("header")
		verbose, _ := cmd.Flags().GetBool("verbose")
		noColor, _ := cmd.Flags().GetBool("no-color")
		extract, _ := cmd.Flags().GetString("extract")
		schemaPath, _ := cmd.Flags().GetString("schema")

		client, err := clientFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		req := hopperhttp.NewRequest("GET", normalizeURL(args[0])).
			WithHeaders(parseHeaderFlags(headers))

		formatter := output.NewFormatter(verbose, noColor)
		fmt.Print(formatter.FormatRequest(req))

		resp, err := client.Send(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if extract != "" {
			fmt.Println(gjson.GetBytes(resp.Body, extract).String())
			return
		}

		fmt.Print(formatter.FormatResponse(resp))

		if schemaPath != "" {
			if err := validateSchemaFile(resp.Body, schemaPath); err != nil {
				fmt.Fprintf(os.Stderr, "Schema validation failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Schema validation passed")
		}
	},
}

func init() {
	addClientFlags(getCmd)
	getCmd.Flags().String("extract", "", "Print only the JSON value at this gjson path")
	getCmd.Flags().String("schema", "", "Validate the response body against this JSON Schema file")
}
