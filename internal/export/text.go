package export

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// WriteText renders doc as plain text.
func WriteText(w io.Writer, doc Document, opts Options, now time.Time) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
		bw.WriteByte('\n')
	}

	if opts.IncludeTitle && doc.ProjectName != "" {
		line(rule)
		line("%s", doc.ProjectName)
		line(rule)
		line("")
	}

	if opts.IncludeCharacters && len(doc.Characters) > 0 {
		line("[Characters]")
		line("")
		for _, c := range doc.Characters {
			line("* %s", orUnknown(c.Name))
			line("Personality: %s", orUnknown(c.Personality))
			line("Appearance: %s", orUnknown(c.Appearance))
			line("")
		}
		line(rule)
		line("")
	}

	if opts.IncludeWorld && !doc.World.IsZero() {
		line("[World]")
		line("")
		line("Name: %s", orUnknown(doc.World.Name))
		line("Era: %s", orUnknown(doc.World.Era))
		line("Overview: %s", orUnknown(doc.World.Overview))
		line("")
		line(rule)
		line("")
	}

	for i, sc := range doc.Scenes {
		line("[Chapter %d: %s]", i+1, sceneTitle(sc))
		line("")
		line("%s", sc.Content)
		line("")
		line(rule)
		line("")
	}

	fmt.Fprintf(bw, "Created: %s", now.Format(createdLayout))
	return bw.Flush()
}
