package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	hopperhttp "github.com/hopperhttp/hopper/http"
	"github.com/hopperhttp/hopper/internal/output"
)

// latency histogram bounds, in milliseconds
const (
	latencyMinMs = 1
	latencyMaxMs = 60_000
)

var fetchCmd = &cobra.Command{
	Use:   "fetch URL [URL...]",
	Short: "Fetch many URLs concurrently over one event loop",
	Long: `Fetch dispatches every URL asynchronously against a single multiplexed
event loop and waits for all of them to complete, printing one line per
result and a latency summary at the end.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		headers, _ := cmd.Flags().GetStringArray("header")
		noColor, _ := cmd.Flags().GetBool("no-color")
		extract, _ := cmd.Flags().GetString("extract")

		client, err := clientFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		scheme := output.DefaultColorScheme()
		if noColor {
			scheme = output.NoColorScheme()
		}

		hist := hdrhistogram.New(latencyMinMs, latencyMaxMs, 3)
		succeeded, failed := 0, 0
		defaultHeaders := parseHeaderFlags(headers)

		for _, arg := range args {
			url := normalizeURL(arg)
			start := time.Now()
			req := hopperhttp.NewRequest("GET", url).WithHeaders(defaultHeaders)

			err := client.Dispatch(req,
				func(req *hopperhttp.Request, resp *hopperhttp.Response) {
					recordLatency(hist, time.Since(start))
					succeeded++
					line := fmt.Sprintf("%s %s", scheme.Status(resp.StatusCode).Sprintf("%d", resp.StatusCode), req.URL)
					if extract != "" {
						line += "  " + gjson.GetBytes(resp.Body, extract).String()
					}
					fmt.Println(line)
				},
				func(req *hopperhttp.Request, err error) {
					recordLatency(hist, time.Since(start))
					failed++
					fmt.Printf("%s %s  %v\n", scheme.Error.Sprint("ERR"), req.URL, err)
				},
			)
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Error: %s: %v\n", url, err)
			}
		}

		client.WaitAll()
		fmt.Print(fetchSummary(hist, succeeded, failed))

		if failed > 0 {
			os.Exit(1)
		}
	},
}

// recordLatency clamps the sample into the histogram's range so a slow
// outlier cannot error out the recording.
func recordLatency(hist *hdrhistogram.Histogram, elapsed time.Duration) {
	ms := elapsed.Milliseconds()
	if ms < latencyMinMs {
		ms = latencyMinMs
	}
	if ms > latencyMaxMs {
		ms = latencyMaxMs
	}
	_ = hist.RecordValue(ms)
}

func fetchSummary(hist *hdrhistogram.Histogram, succeeded, failed int) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "\n%d succeeded, %d failed\n", succeeded, failed)
	if hist.TotalCount() > 0 {
		fmt.Fprintf(&buf, "latency ms: p50=%d p90=%d p99=%d max=%d\n",
			hist.ValueAtQuantile(50),
			hist.ValueAtQuantile(90),
			hist.ValueAtQuantile(99),
			hist.Max())
	}
	return buf.String()
}

func init() {
	addClientFlags(fetchCmd)
	fetchCmd.Flags().String("extract", "", "Append the JSON value at this gjson path to each result line")
}
