// Command bordereauctl runs the sealing rules offline against document
// fixtures.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bordereauctl: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	kind    string
	current string
	sirets  []string
	user    string
	output  string
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "bordereauctl",
		Short: "Inspect sealed fields of BSDA and BSFF fixtures",
		Long: `bordereauctl evaluates the signature sealing rules on YAML or JSON fixtures,
without a server. Fixtures use the same field names as the HTTP API.`,
		SilenceUsage: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.kind, "kind", "k", "bsda", "Document kind: bsda or bsff")
	flags.StringVarP(&opts.current, "current", "c", "", "Stored document fixture")
	flags.StringSliceVarP(&opts.sirets, "siret", "s", nil, "SIRET the editor acts for (repeatable)")
	flags.StringVar(&opts.user, "user", "bordereauctl", "Editor user id")
	flags.StringVarP(&opts.output, "output", "o", "text", "Output format: text or yaml")
	_ = cmd.MarkPersistentFlagRequired("current")

	cmd.AddCommand(
		newCheckCmd(opts),
		newSealedCmd(opts),
	)
	return cmd
}

func newCheckCmd(opts *options) *cobra.Command {
	var proposed string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check an edit against the stored document",
		Long: `check diffs the proposed input against the current document and prints the
fields the edit would change. It fails and lists every sealed field when the
edit touches a field locked by a signature.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := kindOf(opts.kind)
			if err != nil {
				return err
			}
			res, err := k.check(opts.current, proposed, opts.editor())
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), opts.output, res); err != nil {
				return err
			}
			if !res.Accepted {
				return fmt.Errorf("%d sealed field(s)", len(res.Sealed))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&proposed, "proposed", "p", "", "Proposed input fixture")
	_ = cmd.MarkFlagRequired("proposed")
	return cmd
}

func newSealedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sealed",
		Short: "List the fields the editor can no longer change",
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := kindOf(opts.kind)
			if err != nil {
				return err
			}
			fields, err := k.sealed(opts.current, opts.editor())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, result{Accepted: true, Sealed: fields})
		},
	}
}
