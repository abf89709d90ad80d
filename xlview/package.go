package xlview

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// Package is an opened OOXML zip container. It exposes named parts as fully
// materialized byte slices and resolves _rels relationship indirection.
type Package struct {
	reader *zip.Reader
	parts  map[string]*zip.File
}

// OpenPackage opens raw package bytes as a zip archive.
func OpenPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, NewInvalidArchiveError("not a readable zip archive: %v", err)
	}
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	return &Package{reader: zr, parts: parts}, nil
}

// HasPart reports whether a part with the given path exists.
func (p *Package) HasPart(partPath string) bool {
	_, ok := p.parts[partPath]
	return ok
}

// PartNames returns the names of all parts in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.reader.File))
	for _, f := range p.reader.File {
		names = append(names, f.Name)
	}
	return names
}

// Part returns the full decompressed content of the named part.
func (p *Package) Part(partPath string) ([]byte, error) {
	f, ok := p.parts[partPath]
	if !ok {
		return nil, NewMissingPartError(partPath)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, NewInvalidArchiveError("cannot open part %s: %v", partPath, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewInvalidArchiveError("cannot read part %s: %v", partPath, err)
	}
	return data, nil
}

type xlsxRelationships struct {
	XMLName       xml.Name           `xml:"Relationships"`
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// RelationshipsOf parses the _rels sibling of the given part and returns a
// map of rId to resolved target path. A part with no rels file has no
// relationships; that is not an error.
func (p *Package) RelationshipsOf(partPath string) (map[string]string, error) {
	relsPath := relsPathFor(partPath)
	if !p.HasPart(relsPath) {
		return map[string]string{}, nil
	}
	data, err := p.Part(relsPath)
	if err != nil {
		return nil, err
	}
	var rels xlsxRelationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, NewXMLParseError(relsPath, err)
	}
	base := path.Dir(partPath)
	out := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		if rel.ID == "" || rel.Target == "" {
			continue
		}
		out[rel.ID] = resolveTarget(base, rel.Target)
	}
	return out, nil
}

// relationshipList returns the part's relationships with targets resolved,
// preserving the relationship type for callers that select by it.
func (p *Package) relationshipList(partPath string) ([]xlsxRelationship, error) {
	relsPath := relsPathFor(partPath)
	if !p.HasPart(relsPath) {
		return nil, nil
	}
	data, err := p.Part(relsPath)
	if err != nil {
		return nil, err
	}
	var rels xlsxRelationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, NewXMLParseError(relsPath, err)
	}
	base := path.Dir(partPath)
	out := make([]xlsxRelationship, 0, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		rel.Target = resolveTarget(base, rel.Target)
		out = append(out, rel)
	}
	return out, nil
}

// relsPathFor maps "xl/workbook.xml" to "xl/_rels/workbook.xml.rels" and the
// package root to "_rels/.rels".
func relsPathFor(partPath string) string {
	if partPath == "" || partPath == "/" {
		return "_rels/.rels"
	}
	dir, name := path.Split(partPath)
	return dir + "_rels/" + name + ".rels"
}

// resolveTarget resolves a relationship target against the source part's
// directory. A leading "/" marks a package-absolute target. External targets
// (URLs, mailto) pass through untouched.
func resolveTarget(base, target string) string {
	if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
		return target
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if base == "." || base == "" {
		return path.Clean(target)
	}
	return path.Clean(base + "/" + target)
}
