// statement/sections.go
package statement

// Known section names in a broker activity statement. Sections not listed
// here are still collected; these constants just name the ones downstream
// code reads.
const (
	SectionStatement   = "Statement"
	SectionAccount     = "Account Information"
	SectionNAV         = "Net Asset Value"
	SectionPositions   = "Open Positions"
	SectionTrades      = "Trades"
	SectionInstruments = "Financial Instrument Information"
)

// RawSection holds the tokenized rows of one named statement section.
// A section may appear in several non-contiguous blocks in the source
// (brokers repeat the Trades banner around SubTotal breaks); all of its
// data rows end up in the same RawSection, in source order.
type RawSection struct {
	Name string
	// Header is the most recent full header line for the section,
	// including the leading (name, "Header") tokens.
	Header []string
	// Rows are full data lines, first token equal to Name.
	Rows [][]string
	// Summary keeps SubTotal/Total banner rows for validation. They are
	// never treated as data.
	Summary [][]string
}

// IdentifySections walks tokenized lines once and partitions them into
// named sections. A line whose first two tokens are (name, "Header") opens
// or continues the section of that name; following lines belong to it while
// their first token repeats the name. Any other line closes the current
// section and is ignored unless it opens a new one.
func IdentifySections(lines [][]string) map[string]*RawSection {
	sections := make(map[string]*RawSection)
	current := ""

	for _, tokens := range lines {
		if len(tokens) < 2 {
			current = ""
			continue
		}
		name, kind := tokens[0], tokens[1]
		if name == "" {
			// A leading-comma line names no section; it closes the
			// current one like any other foreign line.
			current = ""
			continue
		}

		if kind == "Header" {
			sec := sections[name]
			if sec == nil {
				sec = &RawSection{Name: name}
				sections[name] = sec
			}
			sec.Header = tokens
			current = name
			continue
		}

		if name != current {
			// The current section is closed; stray rows for an
			// already-closed section are dropped, not reattached.
			// A section only reopens through another Header line.
			current = ""
			continue
		}

		appendRow(sections[name], tokens, kind)
	}
	return sections
}

func appendRow(sec *RawSection, tokens []string, kind string) {
	switch kind {
	case "SubTotal", "Total":
		sec.Summary = append(sec.Summary, tokens)
	case "Notes", "MetaInfo":
		// informational banners, no row data
	default:
		sec.Rows = append(sec.Rows, tokens)
	}
}
