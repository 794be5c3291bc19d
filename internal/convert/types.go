package convert

// RuleSet holds the four typed buckets of a sing-box headless rule. Entries
// within a bucket keep the order of first appearance in the source text;
// downstream consumers may treat order as priority. Buckets are never nil so
// empty ones serialize as [] rather than null.
type RuleSet struct {
	Domain       []string `json:"domain"`
	DomainSuffix []string `json:"domain_suffix"`
	IPCIDR       []string `json:"ip_cidr"`
	ProcessName  []string `json:"process_name"`
}

// Len returns the total number of entries across all buckets.
func (rs RuleSet) Len() int {
	return len(rs.Domain) + len(rs.DomainSuffix) + len(rs.IPCIDR) + len(rs.ProcessName)
}

// Document is the sing-box rule-set source envelope. The format allows several
// rule groups but the converter always emits exactly one.
type Document struct {
	Version int       `json:"version"`
	Rules   []RuleSet `json:"rules"`
}

// NewDocument wraps a RuleSet in the version-1 envelope.
func NewDocument(rs RuleSet) Document {
	return Document{Version: 1, Rules: []RuleSet{rs}}
}
