package xlview

import "encoding/xml"

// xlsxWorkbook directly maps the workbook element from xl/workbook.xml.
type xlsxWorkbook struct {
	XMLName      xml.Name          `xml:"workbook"`
	FileVersion  *xlsxFileVersion  `xml:"fileVersion"`
	WorkbookPr   *xlsxWorkbookPr   `xml:"workbookPr"`
	Sheets       xlsxSheets        `xml:"sheets"`
	DefinedNames *xlsxDefinedNames `xml:"definedNames"`
}

type xlsxFileVersion struct {
	AppName string `xml:"appName,attr"`
}

type xlsxWorkbookPr struct {
	Date1904 bool `xml:"date1904,attr"`
}

type xlsxSheets struct {
	Sheet []xlsxSheet `xml:"sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID string `xml:"sheetId,attr"`
	ID      string `xml:"id,attr"`
	State   string `xml:"state,attr"`
}

type xlsxDefinedNames struct {
	DefinedName []xlsxDefinedName `xml:"definedName"`
}

type xlsxDefinedName struct {
	Name         string `xml:"name,attr"`
	LocalSheetID *int   `xml:"localSheetId,attr"`
	Data         string `xml:",chardata"`
}

func decodeWorkbook(path string, data []byte) (*xlsxWorkbook, error) {
	var wb xlsxWorkbook
	if err := xml.Unmarshal(data, &wb); err != nil {
		return nil, NewXMLParseError(path, err)
	}
	return &wb, nil
}
