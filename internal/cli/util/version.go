package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/historian/internal/build"
	"github.com/ariel-frischer/historian/internal/cli/shared"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/historian"

var versionPlain bool

// VersionCmd displays build information.
var VersionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for historian",
	Example: `  # Show version info
  historian version

  # Plain output (for scripts)
  historian version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), shared.GetTerminalWidth())
	},
}

func init() {
	VersionCmd.GroupID = shared.GroupInternal
	VersionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "historian %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints a styled version output inside a box
func printPrettyVersion(w io.Writer, termWidth int) {
	dim := color.New(color.Faint).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", build.ShortCommit()},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4 // Account for borders and padding
	pad := strings.Repeat(" ", max(0, (termWidth-boxWidth)/2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, pad+dim("historian: changelogs that know the next version"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, pad+"┌"+strings.Repeat("─", boxWidth-2)+"┐")
	for _, item := range info {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%10s", item.label)), white(item.value))
		lineLen := 10 + 4 + len(item.value) + 2 // label width + spacing + value + margin
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(w, pad+"│ "+line+" │")
	}
	fmt.Fprintln(w, pad+"└"+strings.Repeat("─", boxWidth-2)+"┘")
	fmt.Fprintln(w)
}
