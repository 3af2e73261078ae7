package draw

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Formatter renders a normalized result as a Telegram-flavored HTML message.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(loc *time.Location) *Formatter {
	return &Formatter{loc: loc}
}

// Run formats a result using the given message format. The detailed format
// carries a posted-at stamp in the target timezone plus hashtags; when no
// hashtags are configured, one is derived from the game name.
func (f *Formatter) Run(res Result, format string, hashtags []string, now time.Time) string {
	game := html.EscapeString(res.Game)
	phase := html.EscapeString(res.Phase)
	numbers := html.EscapeString(res.Numbers)

	if format != "detailed" {
		return fmt.Sprintf("<b>%s</b> — <code>%s</code> — <b>%s</b> (%s)", game, phase, numbers, res.DateISO)
	}

	if len(hashtags) == 0 {
		hashtags = []string{"#" + strings.ReplaceAll(res.Game, " ", "")}
	}

	stamp := now.In(f.loc).Format("2006-01-02 15:04 MST")

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s — %s</b>\n", game, res.DateISO)
	fmt.Fprintf(&b, "Phase: <code>%s</code>\n", phase)
	fmt.Fprintf(&b, "Winning numbers: <b>%s</b>\n\n", numbers)
	fmt.Fprintf(&b, "Posted at %s\n", stamp)
	b.WriteString(strings.Join(hashtags, " "))

	return b.String()
}
