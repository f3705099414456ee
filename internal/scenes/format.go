package scenes

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// count rounds v and groups thousands, e.g. 2847 → "2,847".
func count(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}
