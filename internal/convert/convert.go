// Package convert implements the transformation of clash rule-provider lists
// into sing-box rule-set buckets. The transformation is pure and total:
// malformed lines are dropped or passed through, never reported.
package convert

import (
	"strings"

	"github.com/TimurManjosov/rulebridge/internal/catalog"
)

const (
	payloadHeader  = "payload:"
	listItemMarker = "- "
	suffixMarker   = "+."
	processPrefix  = "PROCESS-NAME,"
)

// Transform parses raw rule-list text into typed buckets according to the
// declared behavior of its source. An unrecognized behavior yields empty
// buckets, matching the permissive handling of the source format.
func Transform(raw string, behavior catalog.Behavior) RuleSet {
	rs := RuleSet{
		Domain:       []string{},
		DomainSuffix: []string{},
		IPCIDR:       []string{},
		ProcessName:  []string{},
	}

	for _, line := range strings.Split(raw, "\n") {
		rule, ok := extractRule(line)
		if !ok {
			continue
		}
		switch behavior {
		case catalog.BehaviorDomain:
			rs.appendDomain(rule)
		case catalog.BehaviorIPCIDR:
			rs.IPCIDR = append(rs.IPCIDR, rule)
		case catalog.BehaviorClassical:
			// Classical lists mix rule types; only PROCESS-NAME entries are
			// extracted, everything else already exists in the domain and
			// ipcidr sources.
			if strings.HasPrefix(rule, processPrefix) {
				rs.ProcessName = append(rs.ProcessName, strings.SplitN(rule, ",", 2)[1])
			}
		}
	}
	return rs
}

// extractRule normalizes one raw line into a rule value. It reports false for
// lines that carry no rule: blanks, comments and the payload: header that
// precedes the entries of the clash YAML list form.
func extractRule(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || line == payloadHeader {
		return "", false
	}
	if strings.HasPrefix(line, listItemMarker) {
		// "- '+.example.com'" list items: drop the marker, then any
		// surrounding quote characters. Unmatched quotes are stripped too;
		// the source format is not strict about pairing.
		return strings.Trim(line[len(listItemMarker):], `'"`), true
	}
	return line, true
}

// appendDomain routes a domain-behavior rule. Rules with the +. wildcard
// marker always feed the suffix bucket (with the marker stripped to a leading
// dot); when the wildcard covers more than a bare two-label root, the root
// itself is also added to the exact bucket so it matches without a subdomain.
// The dot arithmetic runs unchanged on degenerate rules like a lone "+.".
func (rs *RuleSet) appendDomain(rule string) {
	if !strings.HasPrefix(rule, suffixMarker) {
		rs.Domain = append(rs.Domain, rule)
		return
	}
	rs.DomainSuffix = append(rs.DomainSuffix, rule[1:])
	if len(strings.Split(rule, ".")) > 3 {
		rs.Domain = append(rs.Domain, rule[2:])
	}
}
