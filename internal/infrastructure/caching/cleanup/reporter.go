// Package cleanup provides ascii reporter
package cleanup

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumenworks/galleria-go/internal/infrastructure/caching/types"
)

const (
	cyan        = "\033[38;2;86;182;194m"  // One Dark Cyan: #56B6C2
	cyanBright  = "\033[38;2;97;228;240m"  // Brighter Cyan: #61E4F0
	dimCyan     = "\033[38;2;47;91;102m"   // Dim Cyan: #2F5B66
	grey        = "\033[38;2;110;118;129m" // Brighter Grey: #6E7681
	dimGrey     = "\033[38;2;75;82;99m"    // Darker Grey: #4B5263
	success     = "\033[38;2;62;130;144m"  // Dim Cyan: #3E8290
	warning     = "\033[38;2;229;192;123m" // One Dark Yellow: #E5C07B
	errorRed    = "\033[38;2;224;108;117m" // One Dark Red: #E06C75
	white       = "\033[38;2;171;178;191m" // One Dark Foreground: #ABB2BF
	whiteBright = "\033[38;2;220;225;230m" // Brighter White
	reset       = "\033[0m"
	bold        = "\033[1m"
)

// Reporter renders human-readable cache occupancy reports for verbose sweeps.
type Reporter struct{}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) LogHeader(title string) {
	fmt.Printf("%s%s✓ %s %s\n", bold, cyan, strings.ToUpper(title), reset)
}

func (r *Reporter) LogError(message string, err error) {
	fmt.Printf("%s%s✖ ERROR: %s%s: %v%s\n", bold, errorRed, grey, message, err, reset)
}

func (r *Reporter) LogWarning(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s%s⚠ WARNING: %s%s%s\n", bold, warning, grey, formattedMsg, reset)
}

func (r *Reporter) LogInfo(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s▶ %s%s%s\n", dimGrey, grey, formattedMsg, reset)
}

// GenerateSweepReport renders one cache snapshot after a cleanup pass.
func (r *Reporter) GenerateSweepReport(stats types.CacheStats, expiredPayloads, expiredFragments int, duration time.Duration) string {
	var report strings.Builder
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 MST")

	report.WriteString(fmt.Sprintf("%s%s▓ %s | %sCache Sweep%s %s\n", bold, dimCyan, timestamp, whiteBright, reset, reset))

	if expiredPayloads+expiredFragments > 0 {
		report.WriteString(fmt.Sprintf("%s✦ %sexpired: %s%d payloads%s, %s%d fragments%s in %s%v%s\n",
			success, grey, cyanBright, expiredPayloads, reset, cyanBright, expiredFragments, reset, white, duration, reset))
	} else {
		report.WriteString(fmt.Sprintf("%s○ %snothing expired%s (%v)\n", dimGrey, grey, reset, duration))
	}

	occupancy := "0%"
	if stats.MaxBytes > 0 {
		occupancy = fmt.Sprintf("%.1f%%", float64(stats.TotalBytes)/float64(stats.MaxBytes)*100)
	}
	report.WriteString(fmt.Sprintf("%s✦ %sroutes cached: %s%d%s | %s%s / %s%s (%s)\n",
		success, grey, cyanBright, stats.Entries, reset,
		white, formatBytes(stats.TotalBytes), formatBytes(stats.MaxBytes), reset, occupancy))

	for _, line := range stats.Routes {
		age := time.Since(line.LastLoaded).Round(time.Second)
		report.WriteString(fmt.Sprintf("  %s%-14s%s %s%8s%s  %sloaded %v ago%s\n",
			cyan, line.Route, reset, white, formatBytes(line.Size), reset, dimGrey, age, reset))
	}

	return report.String()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
