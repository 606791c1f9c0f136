package theme

import (
	"fmt"
)

// Banner returns the startup banner.
func Banner() string {
	const cyan = "\033[36m"
	const magenta = "\033[35m"
	const yellow = "\033[33m"
	const reset = "\033[0m"

	art := "" +
		"  ◆◇◆   " + magenta + "AGENTBOT" + reset + "   ◆◇◆\n" +
		cyan + "   ┌─[ post ]──[ reason ]──[ reply ]─┐\n" + reset +
		cyan + "   └────────── agentropic ──────────┘\n" + reset +
		yellow + "     ─────────────────────────────\n" + reset +
		"   autonomous posting and mention replies for X\n"
	return art
}

// PrintBanner prints the banner to stdout.
func PrintBanner() {
	fmt.Print(Banner())
}
