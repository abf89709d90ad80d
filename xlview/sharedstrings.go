package xlview

import "encoding/xml"

// xlsxSST maps the sst element from xl/sharedStrings.xml. Each si is either a
// plain <t> or a sequence of rich-text runs, which are flattened to plain
// text for the string table.
type xlsxSST struct {
	XMLName xml.Name `xml:"sst"`
	SI      []xlsxSI `xml:"si"`
}

type xlsxSI struct {
	T *xlsxText     `xml:"t"`
	R []xlsxRichRun `xml:"r"`
}

type xlsxRichRun struct {
	T xlsxText `xml:"t"`
}

type xlsxText struct {
	Content string `xml:",chardata"`
}

func (si *xlsxSI) text() string {
	if si.T != nil {
		return si.T.Content
	}
	var out string
	for _, run := range si.R {
		out += run.T.Content
	}
	return out
}

// decodeSharedStrings parses the shared string table into a flat string
// slice indexed by string index.
func decodeSharedStrings(path string, data []byte) ([]string, error) {
	var sst xlsxSST
	if err := xml.Unmarshal(data, &sst); err != nil {
		return nil, NewXMLParseError(path, err)
	}
	out := make([]string, len(sst.SI))
	for i := range sst.SI {
		out[i] = sst.SI[i].text()
	}
	return out, nil
}
