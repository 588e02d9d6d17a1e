package text

import (
	"regexp"
	"strconv"
	"strings"
)

var digitsRe = regexp.MustCompile(`\d+`)

var units = []string{
	"zero", "u", "dos", "tres", "quatre", "cinc", "sis", "set", "vuit", "nou",
	"deu", "onze", "dotze", "tretze", "catorze", "quinze", "setze",
	"disset", "divuit", "dinou",
}

var tens = []string{
	"", "", "vint", "trenta", "quaranta", "cinquanta",
	"seixanta", "setanta", "vuitanta", "noranta",
}

// expandNumbers rewrites every digit run as Catalan cardinal words so the
// encoder never sees a digit. Values that overflow int64 are spelled
// digit by digit.
func expandNumbers(s string) string {
	return digitsRe.ReplaceAllStringFunc(s, func(d string) string {
		n, err := strconv.ParseInt(d, 10, 64)
		if err != nil {
			var parts []string
			for _, r := range d {
				parts = append(parts, units[r-'0'])
			}
			return strings.Join(parts, " ")
		}
		return numberToWords(n)
	})
}

func numberToWords(n int64) string {
	switch {
	case n < 20:
		return units[n]
	case n < 100:
		t, u := n/10, n%10
		if u == 0 {
			return tens[t]
		}
		// Catalan joins 21-29 with "-i-" and all later tens with "-".
		if t == 2 {
			return tens[t] + "-i-" + units[u]
		}
		return tens[t] + "-" + units[u]
	case n < 1000:
		c, rest := n/100, n%100
		head := "cent"
		if c > 1 {
			head = units[c] + "-cents"
		}
		if rest == 0 {
			return head
		}
		return head + " " + numberToWords(rest)
	case n < 1000000:
		m, rest := n/1000, n%1000
		head := "mil"
		if m > 1 {
			head = numberToWords(m) + " mil"
		}
		if rest == 0 {
			return head
		}
		return head + " " + numberToWords(rest)
	default:
		m, rest := n/1000000, n%1000000
		head := "un milió"
		if m > 1 {
			head = numberToWords(m) + " milions"
		}
		if rest == 0 {
			return head
		}
		return head + " " + numberToWords(rest)
	}
}
