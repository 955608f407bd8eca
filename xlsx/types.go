package xlsx

import "encoding/xml"

// workbookXML is xl/workbook.xml.
type workbookXML struct {
	XMLName xml.Name `xml:"workbook"`
	Sheets  struct {
		Sheet []sheetRefXML `xml:"sheet"`
	} `xml:"sheets"`
}

type sheetRefXML struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"` // r:id
}

// relationshipsXML is xl/_rels/workbook.xml.rels.
type relationshipsXML struct {
	XMLName      xml.Name `xml:"Relationships"`
	Relationship []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// worksheetXML is one xl/worksheets/sheetN.xml.
type worksheetXML struct {
	XMLName   xml.Name `xml:"worksheet"`
	SheetData struct {
		Rows []rowXML `xml:"row"`
	} `xml:"sheetData"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // 1-based, may be absent
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R  string `xml:"r,attr"`
	T  string `xml:"t,attr"` // s, b, e, str, inlineStr or empty for numbers
	V  string `xml:"v"`
	Is *struct {
		T string   `xml:"t"`
		R []runXML `xml:"r"`
	} `xml:"is"`
}

// sharedStringsXML is xl/sharedStrings.xml.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	SI      []struct {
		T string   `xml:"t"`
		R []runXML `xml:"r"`
	} `xml:"si"`
}

type runXML struct {
	T string `xml:"t"`
}
