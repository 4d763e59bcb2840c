package render

import (
	"fmt"
	"strings"

	"kanji-cards/internal/parser"
)

const kanjiTableTemplate = `<table>
  <tr>
    <td style="font-size: 2em; padding-right: 0.5em;">%s</td>
    <td><table>
      %s</table></td>
  </tr>
</table>
`

const readingRowTemplate = `<tr>
        <td>%s</td>
        <td></td>
        <td><center>%s</center></td>
      </tr>
      `

const centerRowTemplate = `<tr>
        <td style="width: 5em;"><hr></td>
        <td style="padding-left: 2.5em;"></td>
        <td><center>%s</center></td>
      </tr>
      `

const wordCardTemplate = `<center>
<div>%s</div>
<div>%s</div>
</center>`

// KanjiTable lays out a kanji entry as a table: onyomi rows, a divider row
// with the whole translation, then kunyomi rows.
func KanjiTable(entry parser.KanjiEntry) string {
	var rows strings.Builder
	switch e := entry.(type) {
	case *parser.AtomicEntry:
		for _, r := range e.Onyomi {
			fmt.Fprintf(&rows, readingRowTemplate, r, "")
		}
		fmt.Fprintf(&rows, centerRowTemplate, e.Translation)
		for _, r := range e.Kunyomi {
			fmt.Fprintf(&rows, readingRowTemplate, r, "")
		}
	case *parser.ComplexEntry:
		for _, r := range e.Onyomi {
			fmt.Fprintf(&rows, readingRowTemplate, r.Reading, r.Translation)
		}
		fmt.Fprintf(&rows, centerRowTemplate, "")
		for _, r := range e.Kunyomi {
			fmt.Fprintf(&rows, readingRowTemplate, r.Reading, r.Translation)
		}
	default:
		return ""
	}
	return fmt.Sprintf(kanjiTableTemplate, entry.Char(), rows.String())
}

// WordCard renders the face of a word card: the annotated reading above
// the translation. Reading and translation use separate style state.
func WordCard(entry *parser.WordEntry) string {
	return fmt.Sprintf(wordCardTemplate, Reading(entry.Japanese), Translation(entry.Translation))
}
