package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skillHeadingMarkers identify section headings that introduce a skill
// list in a job posting.
var skillHeadingMarkers = []string{
	"skill",
	"qualification",
	"requirement",
	"what you bring",
}

// ExtractSkills pulls raw skill phrases from job-posting HTML: list items
// under headings that look like a skills or requirements section. Returns
// phrases in document order; no cleanup beyond whitespace trimming, the
// pipeline normalizes later.
func ExtractSkills(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var skills []string
	doc.Find("h1, h2, h3, h4, strong, b").Each(func(_ int, heading *goquery.Selection) {
		if !isSkillHeading(heading.Text()) {
			return
		}
		list := followingList(heading)
		if list == nil {
			return
		}
		list.Find("li").Each(func(_ int, item *goquery.Selection) {
			text := strings.TrimSpace(item.Text())
			if text != "" {
				skills = append(skills, text)
			}
		})
	})

	return skills, nil
}

func isSkillHeading(text string) bool {
	text = strings.ToLower(text)
	for _, marker := range skillHeadingMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// followingList finds the list a heading introduces: the next ul/ol
// sibling, or the first list inside the heading's parent when the heading
// is an inline element like <strong>.
func followingList(heading *goquery.Selection) *goquery.Selection {
	for next := heading.Next(); next.Length() > 0; next = next.Next() {
		if next.Is("ul, ol") {
			return next
		}
		if !next.Is("p, br, span") {
			break
		}
	}
	if list := heading.Parent().NextAll().Filter("ul, ol").First(); list.Length() > 0 {
		return list
	}
	return nil
}
