package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd asks Gemini to comment on the current trade report.
type assistCmd struct {
	model  string
	recent int
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant about the account" }
func (*assistCmd) Usage() string {
	return `tsm assist [-model <model>] [question...]

  Sends the current trade report to Gemini along with an optional question
  and prints the answer. Requires the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", "gemini-2.5-flash", "Gemini model to use.")
	f.IntVar(&c.recent, "recent", 10, "Number of recent transactions to include in the report.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := "Comment on this account: risks, concentration, and anything noteworthy."
	if f.NArg() > 0 {
		question = strings.Join(f.Args(), " ")
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	data := tradesim.BuildReport(ctx, a.ledger, a.history, a.provider, c.recent, a.log)
	report := renderer.ReportMarkdown(data)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	chat, err := client.Chats.Create(ctx, c.model, nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting chat:", err)
		return subcommands.ExitFailure
	}

	prompt := question + "\n\n" + report
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error from Gemini:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
