package pir

import (
	"fmt"
	"io"
	"strings"
)

// DefaultLanguages is the declared language set of the META section.
var DefaultLanguages = []string{"C", "ASM", "LD"}

// Meta describes the scanned project.
type Meta struct {
	Name      string
	Root      string
	Profile   string
	Languages []string
}

// Document is the complete result of one extraction run, ready to render.
type Document struct {
	Meta    Meta
	Units   []Unit
	Edges   []IncludeEdge
	Symbols []Symbol
	Layouts []Layout
	Bodies  []Body

	// BuildFlags are rendered in a BUILD section only when EmitBuild is set.
	BuildFlags []BuildFlag
	EmitBuild  bool
}

// Render returns the tagged text form of the document.
func (d *Document) Render() string {
	var buf strings.Builder

	buf.WriteString("<PIR>\n")

	buf.WriteString("<META>\n")
	fmt.Fprintf(&buf, "name:%s\n", d.Meta.Name)
	fmt.Fprintf(&buf, "root:%s\n", d.Meta.Root)
	fmt.Fprintf(&buf, "profile:%s\n", d.Meta.Profile)
	langs := d.Meta.Languages
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	fmt.Fprintf(&buf, "lang:%s\n", strings.Join(langs, ","))
	buf.WriteString("</META>\n\n")

	buf.WriteString("<UNITS>\n")
	for _, u := range d.Units {
		fmt.Fprintf(&buf, "%s:%s type=%s arch=%s\n", u.ID, u.Path, u.Type, u.Bucket)
	}
	buf.WriteString("</UNITS>\n\n")

	buf.WriteString("<GRAPH>\n")
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "%s->include:%s\n", e.UnitID, e.Target)
	}
	buf.WriteString("</GRAPH>\n\n")

	buf.WriteString("<SYMBOLS>\n")
	for _, s := range d.Symbols {
		fmt.Fprintf(&buf, "%s:%s %s\n", s.Name, s.UnitID, s.Role)
	}
	buf.WriteString("</SYMBOLS>\n\n")

	buf.WriteString("<LAYOUT>\n")
	for _, l := range d.Layouts {
		if l.Entry != nil {
			fmt.Fprintf(&buf, "ENTRY=%s\n", *l.Entry)
		}
		if l.Base != nil {
			fmt.Fprintf(&buf, "BASE=%s\n", *l.Base)
		}
		for _, sec := range l.Sections {
			fmt.Fprintf(&buf, ".%s:%s\n", sec.Name, strings.Join(sec.Wildcards, " "))
		}
	}
	buf.WriteString("</LAYOUT>\n\n")

	if d.EmitBuild {
		buf.WriteString("<BUILD>\n")
		for _, f := range d.BuildFlags {
			fmt.Fprintf(&buf, "%s:%s=%s\n", f.UnitID, f.Name, f.Value)
		}
		buf.WriteString("</BUILD>\n\n")
	}

	buf.WriteString("<CODE>\n")
	for _, b := range d.Bodies {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		fmt.Fprintf(&buf, "<%s>\n%s\n</%s>\n", b.UnitID, b.Text, b.UnitID)
	}
	buf.WriteString("</CODE>\n")

	buf.WriteString("</PIR>\n")
	return buf.String()
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Render())
	return int64(n), err
}
