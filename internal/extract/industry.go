package extract

import "strings"

func (e *Engine) industry(name, text string) string {
	lower := strings.ToLower(name + " " + text)
	for _, ind := range e.c.industries {
		if ind.re.MatchString(lower) {
			return ind.name
		}
	}
	return e.rules.DefaultIndustry
}
