package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	lberrors "github.com/matzehuels/lbcode/pkg/errors"
	"github.com/matzehuels/lbcode/pkg/pipeline"
)

// outputExtension is appended to converted models.
const outputExtension = ".lbcode"

// convertOpts holds the flags of the convert command.
type convertOpts struct {
	output  string
	stdout  bool
	noCache bool
	strict  bool
	refresh bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <model.ldr>",
		Short: "Convert an LDraw model to LBCode",
		Long: `Convert an LDraw model to LBCode.

Only type-1 lines placing 2x4 bricks in one of the four upright orientations
are converted; comments and blank lines are ignored and other line types are
reported as warnings. The result is written next to the model with the
.lbcode extension unless -o or --stdout is given.`,
		Example: `  lbcode convert castle.ldr
  lbcode convert castle.ldr -o build/castle.lbcode --strict
  lbcode convert castle.ldr --stdout | xxd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <model>.lbcode)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write LBCode to stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the conversion cache")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the model has no convertible bricks")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and convert again")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, path string, opts convertOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	name := filepath.Base(path)
	if err := lberrors.ValidateModelFilename(name); err != nil {
		return err
	}
	input, err := readFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if !opts.stdout && isTerminal(cmd.ErrOrStderr()) {
		spin = newSpinner(ctx, cmd.ErrOrStderr(), "Converting "+name)
		spin.Start()
	}

	res, err := runner.Convert(ctx, pipeline.Options{
		Input:    input,
		FileName: name,
		Strict:   opts.strict,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if spin != nil {
		if err != nil {
			spin.StopWithError(lberrors.UserMessage(err))
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err := cmd.OutOrStdout().Write(res.Data)
		return err
	}

	out := opts.output
	if out == "" {
		out = defaultOutputPath(path)
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	prog.done("wrote " + out)

	w := cmd.OutOrStdout()
	printSuccess(w, "Converted %s", name)
	printFile(w, out)
	printConversionStats(w, res.Stats.Parts, int(res.Layout.Width), int(res.Layout.Height), res.CacheHit)
	for _, warn := range res.Warnings {
		printWarning(w, "%s", warn)
	}
	printNextStep(w, "Inspect it", "lbcode inspect "+out)
	return nil
}

// readFile reads an input file, mapping a missing file to FILE_NOT_FOUND.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, lberrors.Wrap(lberrors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, lberrors.Wrap(lberrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

// defaultOutputPath swaps the model's extension for .lbcode.
func defaultOutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + outputExtension
}
