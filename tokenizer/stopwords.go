package tokenizer

// stopwords is the fixed set of common English function words excluded
// from the index. Entries shorter than MinTermLength are already
// filtered by the length check and are omitted here.
var stopwords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"and": {}, "any": {}, "are": {}, "because": {}, "been": {},
	"before": {}, "being": {}, "below": {}, "between": {}, "both": {},
	"but": {}, "can": {}, "could": {}, "did": {}, "does": {},
	"doing": {}, "down": {}, "during": {}, "each": {}, "few": {},
	"for": {}, "from": {}, "further": {}, "had": {}, "has": {},
	"have": {}, "having": {}, "her": {}, "here": {}, "hers": {},
	"him": {}, "his": {}, "how": {}, "into": {}, "its": {},
	"itself": {}, "just": {}, "more": {}, "most": {}, "not": {},
	"now": {}, "off": {}, "once": {}, "only": {}, "other": {},
	"our": {}, "ours": {}, "out": {}, "over": {}, "own": {},
	"same": {}, "she": {}, "should": {}, "some": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "through": {}, "too": {}, "under": {},
	"until": {}, "very": {}, "was": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {},
	"whom": {}, "why": {}, "will": {}, "with": {}, "would": {},
	"you": {}, "your": {}, "yours": {},
}
