package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for lbcode.

To load completions:

Bash:
  $ source <(lbcode completion bash)

  # To load completions for each session, execute once:
  $ lbcode completion bash > /etc/bash_completion.d/lbcode

Zsh:
  # To load completions for each session, execute once:
  $ lbcode completion zsh > "${fpath[1]}/_lbcode"

Fish:
  $ lbcode completion fish | source

  # To load completions for each session, execute once:
  $ lbcode completion fish > ~/.config/fish/completions/lbcode.fish

PowerShell:
  PS> lbcode completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> lbcode completion powershell > lbcode.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
