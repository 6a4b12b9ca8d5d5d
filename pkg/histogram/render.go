package histogram

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/triclops200/besttime/pkg/stats"
)

// Render creates a terminal bar-chart of a section report. The most
// occupied section is highlighted; bars scale to maxBarWidth so large
// subreddits don't wrap the terminal.
func Render(sections []Section) string {
	const maxBarWidth = 50

	var output strings.Builder
	output.WriteString("📊 Posting times of popular posts\n")
	output.WriteString(strings.Repeat("─", 50) + "\n")

	counts := make([]int, len(sections))
	total := 0
	for i, s := range sections {
		counts[i] = s.Count
		total += s.Count
	}
	maxCount, bestIndex := stats.ArgMax(counts)

	if total == 0 || maxCount == 0 {
		return output.String() + "No post data available\n"
	}
	if total < 20 {
		output.WriteString(fmt.Sprintf("⚠️  Limited data: only %d posts\n", total))
		output.WriteString(strings.Repeat("─", 50) + "\n")
	}

	bestColor := color.New(color.FgYellow)
	barColor := color.New(color.FgHiBlack)

	for i, s := range sections {
		line := s.Start.String() + " "

		if i == bestIndex {
			line += bestColor.Sprint("^") + " "
		} else {
			line += "  "
		}

		if s.Count > 0 {
			line += fmt.Sprintf("(%3d) ", s.Count)
		} else {
			line += "      "
		}

		barLength := s.Count * maxBarWidth / maxCount
		switch {
		case s.Count > 0 && barLength <= 1:
			line += barColor.Sprint("·")
		case i == bestIndex:
			line += bestColor.Sprint(strings.Repeat("█", barLength))
		case barLength > 0:
			line += barColor.Sprint(strings.Repeat("█", barLength))
		}

		output.WriteString(line + "\n")
	}

	return output.String()
}
