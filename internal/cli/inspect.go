package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lbcode/pkg/lbcode"
)

// inspectOpts holds the flags of the inspect command.
type inspectOpts struct {
	json        bool
	interactive bool
}

// inspectReport is the --json output of inspect.
type inspectReport struct {
	File   string        `json:"file"`
	Size   int           `json:"size"`
	Layout lbcode.Layout `json:"layout"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <file.lbcode>",
		Short: "Print the header and records of an LBCode file",
		Example: `  lbcode inspect castle.lbcode
  lbcode inspect castle.lbcode --json | jq '.layout.records | length'
  lbcode inspect castle.lbcode -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the decoded layout as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse records interactively")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, path string, opts inspectOpts) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	layout, err := lbcode.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	loggerFromContext(cmd.Context()).Debug("decoded", "file", path, "records", len(layout.Records))

	w := cmd.OutOrStdout()
	name := filepath.Base(path)

	switch {
	case opts.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(inspectReport{File: name, Size: len(data), Layout: layout})

	case opts.interactive:
		p := tea.NewProgram(newRecordListModel(name, layout),
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(w),
		)
		final, err := p.Run()
		if err != nil {
			return err
		}
		fm, ok := final.(recordListModel)
		if !ok {
			return nil
		}
		rec, idx, ok := fm.Selected()
		if !ok {
			printDetail(w, "No selection made")
			return nil
		}
		printRecord(w, idx, rec)
		return nil
	}

	fmt.Fprintln(w, StyleTitle.Render(name))
	printKeyValue(w, "Size", fmt.Sprintf("%dx%d studs", layout.Width, layout.Height))
	printKeyValue(w, "Records", strconv.Itoa(len(layout.Records)))
	printKeyValue(w, "Bytes", strconv.Itoa(len(data)))
	if len(layout.Records) > 0 {
		fmt.Fprintln(w, recordTable(layout.Records, 0, len(layout.Records), -1).Render())
	}
	return nil
}

// printRecord prints one record as key-value lines.
func printRecord(w io.Writer, idx int, rec lbcode.Record) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Record %d", idx)))
	printKeyValue(w, "Orientation", rec.Orientation.String())
	printKeyValue(w, "Position", fmt.Sprintf("x=%d y=%d z=%d", rec.X, rec.Y, rec.Z))
	printKeyValue(w, "Highlighted", strconv.FormatBool(rec.Highlighted))
	printKeyValue(w, "Flags", fmt.Sprintf("0x%02x", rec.Flags()))
}
