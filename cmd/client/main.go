package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/transport/zmq"
)

// Command-line flags
var (
	endpoint   string
	text       string
	formatType string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "textformatter-client",
	Short: "Send format requests to a running text formatter service",
	Long: `Without --text, runs the built-in scenarios against the service and
reports which ones returned the expected reply. With --text, sends a single
request and prints the JSON reply.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := zmq.NewClient(endpoint, timeout)
		if cmd.Flags().Changed("text") {
			return sendOne(cmd.Context(), cmd.OutOrStdout(), client)
		}
		return runScenarios(cmd.Context(), cmd.OutOrStdout(), client, scenarios)
	},
}

func init() {
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "tcp://localhost:5555", "service endpoint")
	rootCmd.Flags().StringVar(&text, "text", "", "text to format (single request mode)")
	rootCmd.Flags().StringVar(&formatType, "format-type", "", "sentence, upper, lower or title (empty = sentence)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", zmq.DefaultTimeout, "round trip timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// formatter is the part of zmq.Client the commands need.
type formatter interface {
	Format(ctx context.Context, req domain.FormatRequest) (domain.FormatResult, error)
}

func sendOne(ctx context.Context, out io.Writer, client formatter) error {
	result, err := client.Format(ctx, domain.FormatRequest{Text: text, FormatType: formatType})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// scenario is one request with its expected reply.
type scenario struct {
	description string
	request     domain.FormatRequest
	expected    domain.FormatResult
}

var scenarios = []scenario{
	{
		description: "Sentence case formatting",
		request:     domain.FormatRequest{Text: "  hello world.  goodbye world.  ", FormatType: "sentence"},
		expected:    domain.FormatResult{FormattedText: "Hello world. Goodbye world."},
	},
	{
		description: "Uppercase formatting",
		request:     domain.FormatRequest{Text: "  hello world  ", FormatType: "upper"},
		expected:    domain.FormatResult{FormattedText: "HELLO WORLD"},
	},
	{
		description: "Lowercase formatting",
		request:     domain.FormatRequest{Text: "  HELLO WORLD  ", FormatType: "lower"},
		expected:    domain.FormatResult{FormattedText: "hello world"},
	},
	{
		description: "Title case formatting",
		request:     domain.FormatRequest{Text: "  hello world  ", FormatType: "title"},
		expected:    domain.FormatResult{FormattedText: "Hello World"},
	},
	{
		description: "Default formatting (sentence)",
		request:     domain.FormatRequest{Text: "  hello world.  ", FormatType: ""},
		expected:    domain.FormatResult{FormattedText: "Hello world."},
	},
	{
		description: "Invalid format_type (error test)",
		request:     domain.FormatRequest{Text: "  hello world  ", FormatType: "something_invalid"},
		expected: domain.FormatResult{
			Error: "Invalid format_type: 'something_invalid'. Valid options: 'sentence', 'upper', 'lower', 'title'",
		},
	},
}

func runScenarios(ctx context.Context, out io.Writer, client formatter, list []scenario) error {
	rule := strings.Repeat("=", 60)
	failed := 0

	for _, sc := range list {
		fmt.Fprintf(out, "\n%s\nTEST: %s\n%s\n", rule, sc.description, rule)
		fmt.Fprintf(out, "Request: text=%q format_type=%q\n", sc.request.Text, sc.request.FormatType)

		got, err := client.Format(ctx, sc.request)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(out, "✗ Request failed: %v\n", err)
		case got != sc.expected:
			failed++
			fmt.Fprintf(out, "✗ Unexpected reply: formatted_text=%q error=%q\n", got.FormattedText, got.Error)
		case got.Error != "":
			fmt.Fprintf(out, "✓ Error: %s\n", got.Error)
		default:
			fmt.Fprintf(out, "✓ Formatted text: %s\n", got.FormattedText)
		}
	}

	fmt.Fprintf(out, "\n%s\n%d/%d scenarios passed\n%s\n", rule, len(list)-failed, len(list), rule)
	if failed > 0 {
		return errors.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}
