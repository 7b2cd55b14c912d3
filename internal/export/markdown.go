package export

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// WriteMarkdown renders doc as Markdown.
func WriteMarkdown(w io.Writer, doc Document, opts Options, now time.Time) error {
	bw := bufio.NewWriter(w)
	para := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
		bw.WriteString("\n\n")
	}

	if opts.IncludeTitle && doc.ProjectName != "" {
		para("# %s", doc.ProjectName)
	}

	if opts.IncludeCharacters && len(doc.Characters) > 0 {
		para("## Characters")
		for _, c := range doc.Characters {
			para("### %s", orUnknown(c.Name))
			para("**Personality**: %s", orUnknown(c.Personality))
			para("**Appearance**: %s", orUnknown(c.Appearance))
			para("**Background**: %s", orUnknown(c.Background))
		}
		para("---")
	}

	if opts.IncludeWorld && !doc.World.IsZero() {
		para("## World")
		para("**Name**: %s", orUnknown(doc.World.Name))
		para("**Era**: %s", orUnknown(doc.World.Era))
		para("**Overview**: %s", orUnknown(doc.World.Overview))
		para("---")
	}

	for i, sc := range doc.Scenes {
		para("## Chapter %d: %s", i+1, sceneTitle(sc))
		para("%s", sc.Content)
		para("---")
	}

	fmt.Fprintf(bw, "*Created: %s*", now.Format(createdLayout))
	return bw.Flush()
}
