package xlview

import "encoding/xml"

// Comment is a cell comment flattened to plain text.
type Comment struct {
	Ref    string
	Author string
	Text   string
}

type xlsxComments struct {
	XMLName     xml.Name        `xml:"comments"`
	Authors     xlsxAuthors     `xml:"authors"`
	CommentList xlsxCommentList `xml:"commentList"`
}

type xlsxAuthors struct {
	XMLName xml.Name `xml:"authors"`
	Author  []string `xml:"author"`
}

type xlsxCommentList struct {
	Comment []xlsxComment `xml:"comment"`
}

type xlsxComment struct {
	Ref      string  `xml:"ref,attr"`
	AuthorID int     `xml:"authorId,attr"`
	Text     *xlsxSI `xml:"text"`
}

// decodeComments parses a comments part into a map keyed by cell reference.
// Rich text runs are flattened to plain text.
func decodeComments(path string, data []byte) (map[string]Comment, error) {
	var raw xlsxComments
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, NewXMLParseError(path, err)
	}
	out := make(map[string]Comment, len(raw.CommentList.Comment))
	for _, c := range raw.CommentList.Comment {
		comment := Comment{Ref: c.Ref}
		if c.AuthorID >= 0 && c.AuthorID < len(raw.Authors.Author) {
			comment.Author = raw.Authors.Author[c.AuthorID]
		}
		if c.Text != nil {
			comment.Text = c.Text.text()
		}
		out[c.Ref] = comment
	}
	return out, nil
}
