package xlview

import "encoding/xml"

// xlsxWsDr maps the wsDr root of a drawing part. Only the anchors and the
// image relationship ids are decoded; shape geometry is ignored.
type xlsxWsDr struct {
	XMLName        xml.Name         `xml:"wsDr"`
	TwoCellAnchor  []xlsxCellAnchor `xml:"twoCellAnchor"`
	OneCellAnchor  []xlsxCellAnchor `xml:"oneCellAnchor"`
	AbsoluteAnchor []xlsxCellAnchor `xml:"absoluteAnchor"`
}

type xlsxCellAnchor struct {
	From *xlsxAnchorMarker `xml:"from"`
	To   *xlsxAnchorMarker `xml:"to"`
	Pic  *xlsxPic          `xml:"pic"`
}

type xlsxAnchorMarker struct {
	Col int `xml:"col"`
	Row int `xml:"row"`
}

type xlsxPic struct {
	BlipFill *xlsxBlipFill `xml:"blipFill"`
}

type xlsxBlipFill struct {
	Blip *xlsxBlip `xml:"blip"`
}

type xlsxBlip struct {
	Embed string `xml:"embed,attr"`
}

// decodeDrawing extracts image references from a drawing part, resolving
// each blip's r:embed through the drawing's own relationships.
func decodeDrawing(path string, data []byte, rels map[string]string) ([]ImageRef, error) {
	var dr xlsxWsDr
	if err := xml.Unmarshal(data, &dr); err != nil {
		return nil, NewXMLParseError(path, err)
	}

	var images []ImageRef
	collect := func(anchors []xlsxCellAnchor) {
		for _, a := range anchors {
			if a.Pic == nil || a.Pic.BlipFill == nil || a.Pic.BlipFill.Blip == nil {
				continue
			}
			target, ok := rels[a.Pic.BlipFill.Blip.Embed]
			if !ok {
				continue
			}
			img := ImageRef{PartPath: target}
			if a.From != nil {
				img.From.StartRow = a.From.Row
				img.From.StartCol = a.From.Col
				img.From.EndRow = a.From.Row
				img.From.EndCol = a.From.Col
			}
			if a.To != nil {
				img.From.EndRow = a.To.Row
				img.From.EndCol = a.To.Col
			}
			images = append(images, img)
		}
	}
	collect(dr.TwoCellAnchor)
	collect(dr.OneCellAnchor)
	collect(dr.AbsoluteAnchor)
	return images, nil
}
