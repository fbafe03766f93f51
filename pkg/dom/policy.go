package dom

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	definitionListPolicyOnce sync.Once
	definitionListPolicy     *bluemonday.Policy
)

var numericAttr = regexp.MustCompile(`^[0-9]+$`)

// DefinitionListPolicy allows exactly the markup a row summary produces:
// a spanning table cell around a classed definition list with fixed-width
// terms. Everything else is stripped.
func DefinitionListPolicy() *bluemonday.Policy {
	definitionListPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("td", "dl", "dt", "dd")
		policy.AllowAttrs("colspan").Matching(numericAttr).OnElements("td")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("dl", "dt", "dd")
		policy.AllowStyles("width").OnElements("dt")
		policy.AllowStyles("margin-left").OnElements("dd")
		definitionListPolicy = policy
	})
	return definitionListPolicy
}
