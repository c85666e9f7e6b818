package md2pub

import "regexp"

// The render engine emits a nested sub-list inside its parent
// <li>...</li>; the publishing surface needs it as a sibling immediately
// after the closing tag. The rewrite runs to a fixed point because moving
// one list can expose the next occurrence in deeper structures. Only this
// documented malformation shape is handled.
var (
	nestedULPattern = regexp.MustCompile(`(?s)<li([^>]*)>(.*?)<ul([^>]*)>(.*?)</ul>\s*</li>`)
	nestedOLPattern = regexp.MustCompile(`(?s)<li([^>]*)>(.*?)<ol([^>]*)>(.*?)</ol>\s*</li>`)
)

// maxRepairIterations bounds the fixed-point loop on pathological input.
const maxRepairIterations = 100

// RepairNestedLists moves sub-lists out of their parent <li> elements.
// The pass is idempotent: once no occurrence remains it changes nothing.
func RepairNestedLists(html string) string {
	for range maxRepairIterations {
		next := nestedULPattern.ReplaceAllString(html, "<li$1>$2</li><ul$3>$4</ul>")
		next = nestedOLPattern.ReplaceAllString(next, "<li$1>$2</li><ol$3>$4</ol>")
		if next == html {
			return html
		}
		html = next
	}
	return html
}
