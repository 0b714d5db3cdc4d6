package extract

import "regexp"

// emailPattern matches local@domain.tld where the domain has at least one
// dot and the TLD is at least two letters.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// phonePattern matches North-American-style numbers: NNN-NNN-NNNN,
// NNN.NNN.NNNN, and (NNN) NNN-NNNN, with -, . or nothing between groups.
var phonePattern = regexp.MustCompile(`(?:\b\d{3}[-.]?\d{3}[-.]?\d{4}|\(\d{3}\)\s*\d{3}[-.]?\d{4})\b`)

// Emails returns the unique email addresses found in text, in first-match
// order. Matching is purely syntactic; no deliverability check is made.
func Emails(text string) []string {
	return uniqueMatches(emailPattern, text)
}

// Phones returns the unique phone numbers found in text, in first-match
// order.
func Phones(text string) []string {
	return uniqueMatches(phonePattern, text)
}

func uniqueMatches(re *regexp.Regexp, text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
