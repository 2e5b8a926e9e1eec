package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/launchbynttdata/wych/internal/version"
)

func printBanner(w io.Writer) {
	purple := color.New(color.FgMagenta).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	green := color.New(color.FgHiGreen).SprintFunc()

	_, _ = fmt.Fprintf(w, "%s\n", purple("┬ ┬┬ ┬┌─┐┬ ┬"))
	_, _ = fmt.Fprintf(w, "%s   %s\n", purple("│││└┬┘│  ├─┤"), blue("A tiny tool for generating elm version files"))
	_, _ = fmt.Fprintf(w, "%s          %s\n", purple("└┴┘ ┴ └─┘┴ ┴"), green(version.Summary()))
	_, _ = fmt.Fprintln(w)
}
